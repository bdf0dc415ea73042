// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/docx-extract/internal/catalog"
	"github.com/pdiddy/docx-extract/pkg/types"
)

// envKeyReplacer maps nested keys such as catalog.path to
// DOCX_EXTRACT_CATALOG_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// bindConfig registers config defaults and binds flags to their keys.
// It must run after every subcommand has defined its flags, and again
// after viper.Reset.
func bindConfig() {
	viper.SetDefault("extraction.output_dir", "extracted_content")
	viper.SetDefault("catalog.path", catalog.DefaultPath)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", string(types.LogConsole))

	mustBind("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	mustBind("catalog.path", rootCmd.PersistentFlags().Lookup("catalog-path"))

	mustBind("extraction.output_dir", extractCmd.Flags().Lookup("output-dir"))
	mustBind("extraction.write_manifest", extractCmd.Flags().Lookup("manifest"))
	mustBind("extraction.skip_unchanged", extractCmd.Flags().Lookup("skip-unchanged"))
	mustBind("catalog.enabled", extractCmd.Flags().Lookup("catalog"))
}

// mustBind binds a flag to a config key. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
