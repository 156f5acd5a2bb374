package config

import (
	"github.com/smallbiznis/invoicegen/internal/document"
	"github.com/spf13/viper"
)

// LoadLayout reads optional document geometry overrides from layout.yaml.
// A missing file means the built-in A4 defaults are used; a present file only
// needs to list the keys it changes.
func LoadLayout() (document.Layout, error) {
	layout := document.DefaultLayout()

	v := viper.New()
	v.SetConfigName("layout")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("page_height", layout.PageHeight)
	v.SetDefault("top_margin", layout.TopMargin)
	v.SetDefault("bottom_margin", layout.BottomMargin)
	v.SetDefault("side_margin", layout.SideMargin)
	v.SetDefault("title_height", layout.TitleHeight)
	v.SetDefault("meta_height", layout.MetaHeight)
	v.SetDefault("party_label_height", layout.PartyLabelHeight)
	v.SetDefault("party_line_height", layout.PartyLineHeight)
	v.SetDefault("table_header_height", layout.TableHeaderHeight)
	v.SetDefault("row_height", layout.RowHeight)
	v.SetDefault("total_line_height", layout.TotalLineHeight)
	v.SetDefault("section_gap", layout.SectionGap)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return document.Layout{}, err
		}
	}

	layout.PageHeight = v.GetFloat64("page_height")
	layout.TopMargin = v.GetFloat64("top_margin")
	layout.BottomMargin = v.GetFloat64("bottom_margin")
	layout.SideMargin = v.GetFloat64("side_margin")
	layout.TitleHeight = v.GetFloat64("title_height")
	layout.MetaHeight = v.GetFloat64("meta_height")
	layout.PartyLabelHeight = v.GetFloat64("party_label_height")
	layout.PartyLineHeight = v.GetFloat64("party_line_height")
	layout.TableHeaderHeight = v.GetFloat64("table_header_height")
	layout.RowHeight = v.GetFloat64("row_height")
	layout.TotalLineHeight = v.GetFloat64("total_line_height")
	layout.SectionGap = v.GetFloat64("section_gap")

	return layout, nil
}
