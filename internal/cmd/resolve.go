package cmd

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boardlens/boardlens/internal/config"
	"github.com/boardlens/boardlens/internal/core"
	"github.com/boardlens/boardlens/internal/core/translate"
	"github.com/boardlens/boardlens/internal/imaging"
	"github.com/boardlens/boardlens/internal/observability"
	"github.com/boardlens/boardlens/internal/output"
)

var (
	resolveOutput    string
	resolveTranslate bool
	resolveCoverOut  string
	resolveNoHistory bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <中文名>",
	Short: "Resolve a Chinese board game name to its catalog record",
	Long: `Resolve a Chinese board game name to its catalog record.

The alias dictionary is consulted first; otherwise web search plus a
language model propose English names, which are tried against the
structured catalog API and then the public site as a fallback.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		logger := observability.CLILogger

		format, err := output.ParseFormat(resolveOutput)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		res, err := buildResolver(cfg, logger)
		if err != nil {
			return err
		}

		resolution := res.Resolve(cmd.Context(), query)

		if resolveTranslate && resolution.Game != nil {
			translator, err := buildTranslator(cfg, logger)
			if err != nil {
				return err
			}
			applyTranslation(resolution.Game, translator.Translate(cmd.Context(), resolution.Game))
		}

		formatter := output.NewFormatter(format)
		rendered, err := formatter.FormatResolution(resolution)
		if err != nil {
			return err
		}
		fmt.Println(rendered)

		if !resolveNoHistory {
			recordHistory(cmd, cfg, resolution)
		}

		if resolveCoverOut != "" && resolution.Game != nil {
			if err := writeCover(cmd, resolution.Game); err != nil {
				logger.Warn("failed to write cover image", zap.Error(err))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "table", "output format (table, json, markdown)")
	resolveCmd.Flags().BoolVar(&resolveTranslate, "translate", false, "translate categories, mechanics and description to Chinese")
	resolveCmd.Flags().StringVar(&resolveCoverOut, "cover-out", "", "directory to write a cover thumbnail to")
	resolveCmd.Flags().BoolVar(&resolveNoHistory, "no-history", false, "skip recording the resolution in history")
}

// applyTranslation overlays the localized fields onto the record.
func applyTranslation(rec *core.GameRecord, translated translate.Translation) {
	if len(translated.Categories) > 0 {
		rec.Categories = translated.Categories
	}
	if len(translated.Mechanics) > 0 {
		rec.Mechanics = translated.Mechanics
	}
	if translated.Description != "" {
		rec.Description = translated.Description
	}
}

// recordHistory persists the resolution, best effort. A broken store never
// fails the resolve.
func recordHistory(cmd *cobra.Command, cfg *config.Config, resolution *core.Resolution) {
	logger := observability.CLILogger

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		logger.Warn("history store unavailable", zap.Error(err))
		return
	}
	defer func() { _ = st.Close() }()

	if err := st.InsertResolution(cmd.Context(), resolution); err != nil {
		logger.Warn("failed to record resolution", zap.Error(err))
	}
}

// writeCover downloads the record's cover and writes a thumbnail.
func writeCover(cmd *cobra.Command, rec *core.GameRecord) error {
	img, err := imaging.FetchCover(cmd.Context(), http.DefaultClient, rec.ImageURL)
	if err != nil {
		return err
	}

	name := rec.CatalogID
	if name == "" {
		name = "cover"
	}
	path := filepath.Join(resolveCoverOut, name+".jpg")
	if err := imaging.WriteThumbnail(img, path, imaging.DefaultMaxSize, imaging.DefaultQuality); err != nil {
		return err
	}
	fmt.Println("cover written to", path)
	return nil
}
