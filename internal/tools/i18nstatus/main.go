// Command i18nstatus reports how completely each locale translates the base
// locale's catalog keys.
package main

import (
	"flag"
	"fmt"

	"github.com/louisbranch/gram/internal/platform/config"
	i18ncatalog "github.com/louisbranch/gram/internal/platform/i18n/catalog"
)

func main() {
	var (
		baseLocale  string
		markdownOut string
		jsonOut     string
		strict      bool
	)
	flag.StringVar(&baseLocale, "base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	flag.StringVar(&markdownOut, "out", "", "markdown output path; stdout when empty")
	flag.StringVar(&jsonOut, "json-out", "", "optional json output path")
	flag.BoolVar(&strict, "strict", false, "exit non-zero when any locale is missing keys")
	flag.Parse()

	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		config.Exitf(config.ExitFailure, "load i18n catalogs: %v", err)
	}
	if !bundle.HasLocale(baseLocale) {
		config.Exitf(config.ExitFailure, "base locale %q is missing from catalogs", baseLocale)
	}

	rep := buildReport(bundle, baseLocale)
	if jsonOut != "" {
		if err := writeJSON(jsonOut, rep); err != nil {
			config.Exitf(config.ExitFailure, "write json report: %v", err)
		}
	}
	if markdownOut == "" {
		fmt.Print(renderMarkdown(rep))
	} else if err := writeFile(markdownOut, []byte(renderMarkdown(rep))); err != nil {
		config.Exitf(config.ExitFailure, "write markdown report: %v", err)
	}

	if strict && rep.Incomplete() {
		config.Exitf(config.ExitFailure, "i18n catalogs are incomplete")
	}
}
