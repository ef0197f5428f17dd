package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"harpy-detect/config"
	app "harpy-detect/internal/application"
	"harpy-detect/internal/domain/entity"
)

func newFilterCmd(flags *rootFlags) *cobra.Command {
	var (
		in, out, mode, engine string
		boxes                 []string
	)

	cmd := &cobra.Command{
		Use:   "filter --in <image> --out <jpeg> --box x,y,w,h [--box ...]",
		Short: "Blur or redact regions of a local image",
		Long: `Apply the same privacy filter as POST /detect to a local image file.
The result is always written as JPEG.

Example:
  harpy-detect filter --in photo.png --out photo.jpg --mode redact --box 10,20,100,50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filterMode, err := entity.ParseFilterMode(mode)
			if err != nil {
				return err
			}

			regions, err := app.ParseBoxes(strings.Join(boxes, ";"))
			if err != nil {
				return fmt.Errorf("invalid --box: %w", err)
			}

			cfg, err := loadConfig(flags, config.Options{Engine: engine})
			if err != nil {
				return err
			}

			appContainer, err := buildContainer(cfg)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}

			result, err := appContainer.PrivacyService.FilterImage(cmd.Context(), raw, regions, filterMode)
			if err != nil {
				return err
			}

			if err := writeFile(out, result); err != nil {
				return err
			}

			log.Info().
				Str("in", in).
				Str("out", out).
				Str("mode", filterMode.String()).
				Int("regions", len(regions)).
				Msg("Filtered image written")
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Input image (JPEG, PNG, GIF, BMP, TIFF or WebP)")
	cmd.Flags().StringVar(&out, "out", "", "Output JPEG path")
	cmd.Flags().StringVar(&mode, "mode", string(entity.DefaultFilterMode), "Privacy mode: blur or redact")
	cmd.Flags().StringArrayVar(&boxes, "box", nil, "Region x,y,w,h (repeatable)")
	cmd.Flags().StringVar(&engine, "engine", "", "Filter engine: imaging or gocv")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("box")

	return cmd
}
