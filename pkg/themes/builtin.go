package themes

import (
	theme "github.com/goliatone/go-theme"
)

type builtin struct {
	manifest    *theme.Manifest
	description string
}

func builtins() []builtin {
	narrow := map[string]theme.Variant{
		"4x3": {Tokens: map[string]string{"beamer.aspectratio": "43"}},
	}

	return []builtin{
		{
			description: "Plain Beamer default theme, widescreen, no navigation symbols",
			manifest: &theme.Manifest{
				Name:    "classic",
				Version: "1.0.0",
				Tokens: map[string]string{
					"beamer.theme":       "default",
					"beamer.aspectratio": "169",
					"beamer.navigation":  "hide",
				},
				Variants: narrow,
			},
		},
		{
			description: "Madrid with the beaver palette for lecture halls",
			manifest: &theme.Manifest{
				Name:    "lecture",
				Version: "1.0.0",
				Tokens: map[string]string{
					"beamer.theme":       "Madrid",
					"beamer.colortheme":  "beaver",
					"beamer.aspectratio": "169",
					"beamer.navigation":  "hide",
				},
				Variants: map[string]theme.Variant{
					"4x3": {Tokens: map[string]string{"beamer.aspectratio": "43"}},
					"dark": {Tokens: map[string]string{
						"beamer.colortheme": "albatross",
						"beamer.alert":      "#FFD700",
					}},
				},
			},
		},
		{
			description: "Boadilla with serif fonts and the orchid palette",
			manifest: &theme.Manifest{
				Name:    "seminar",
				Version: "1.0.0",
				Tokens: map[string]string{
					"beamer.theme":       "Boadilla",
					"beamer.colortheme":  "orchid",
					"beamer.fonttheme":   "serif",
					"beamer.aspectratio": "169",
					"beamer.navigation":  "hide",
				},
				Variants: narrow,
			},
		},
	}
}
