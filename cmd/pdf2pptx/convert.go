// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2pptx/internal/history"
	"github.com/pdiddy/pdf2pptx/internal/pipeline"
	"github.com/pdiddy/pdf2pptx/internal/raster"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert -f <document.pdf>",
	Short: "Convert a PDF document into a .pptx deck",
	Long: `Convert renders every page of the document at the requested DPI and
writes a deck with one full-bleed slide per page, in page order.

The deck is written next to the document with a .pptx extension unless
--destination is given. On success the absolute path of the deck is
printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("destination")

	if out != "" {
		if err := pipeline.ValidateOutputPath(out); err != nil {
			return err
		}
	}

	cfg := conversionConfig()
	if cfg.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %d", types.ErrInvalidParameter, cfg.DPI)
	}
	canvas, err := resolveCanvas(cfg.Canvas)
	if err != nil {
		return err
	}

	r, err := raster.Detect(cfg.Backend)
	if err != nil {
		return err
	}

	opts := []pipeline.Option{
		pipeline.WithCanvas(canvas),
		pipeline.WithWorkspaceRoot(cfg.WorkspaceRoot),
		pipeline.WithLogger(logger),
	}

	if hc := historyConfig(); hc.Enabled && hc.DB != "" {
		store, err := history.Open(hc.DB, hc.MaxResults)
		if err != nil {
			// History is auxiliary; a conversion never fails because of it.
			logger.Warn().Err(err).Msg("conversion history disabled")
		} else {
			defer store.Close()
			opts = append(opts, pipeline.WithRecorder(store))
		}
	}

	ctx, stop := signalContext()
	defer stop()

	res, err := pipeline.New(r, opts...).Convert(ctx, pipeline.Request{
		DocumentPath: doc,
		OutputPath:   out,
		DPI:          cfg.DPI,
	})
	if err != nil {
		return err
	}
	if res.CleanupErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", res.CleanupErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}

func init() {
	convertCmd.Flags().StringP("file", "f", "", "PDF document to convert (required)")
	convertCmd.Flags().StringP("destination", "d", "", "output .pptx path (default: <document>.pptx beside the input)")
	convertCmd.Flags().IntP("quality", "q", types.DefaultDPI, "rasterization resolution in DPI")
	convertCmd.Flags().String("backend", string(types.BackendMuPDF), "rasterizer backend: mupdf or poppler")
	convertCmd.Flags().Float64("canvas-width", 0, "slide width in inches (set together with --canvas-height)")
	convertCmd.Flags().Float64("canvas-height", 0, "slide height in inches (set together with --canvas-width)")
	_ = convertCmd.MarkFlagRequired("file")

	_ = viper.BindPFlag("dpi", convertCmd.Flags().Lookup("quality"))
	_ = viper.BindPFlag("backend", convertCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("canvas.width", convertCmd.Flags().Lookup("canvas-width"))
	_ = viper.BindPFlag("canvas.height", convertCmd.Flags().Lookup("canvas-height"))

	rootCmd.AddCommand(convertCmd)
}
