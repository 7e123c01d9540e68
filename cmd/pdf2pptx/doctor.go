// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2pptx/internal/raster"
	"github.com/pdiddy/pdf2pptx/internal/workspace"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the rasterizer backends and workspace are usable",
	Long: `Doctor reports which rasterizer backends can run on this machine and
whether a workspace can be created under the configured root. It exits
non-zero when the configured backend is unavailable.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig()
	return doctor(cmd.OutOrStdout(), cfg, raster.Detect)
}

// doctor writes one status line per check and returns the configured
// backend's error, if any.
func doctor(w io.Writer, cfg types.ConversionConfig, detect func(types.RasterBackend) (raster.Rasterizer, error)) error {
	configured := cfg.Backend
	if configured == "" {
		configured = types.BackendMuPDF
	}

	selectedErr := fmt.Errorf("%w: unknown backend", types.ErrInvalidParameter)
	for _, b := range raster.Backends() {
		mark := " "
		if b == configured {
			mark = "*"
		}
		_, err := detect(b)
		if err != nil {
			fmt.Fprintf(w, "%s %-9s unavailable: %v\n", mark, b, err)
		} else {
			fmt.Fprintf(w, "%s %-9s ok\n", mark, b)
		}
		if b == configured {
			selectedErr = err
		}
	}

	root := cfg.WorkspaceRoot
	if root == "" {
		root = os.TempDir()
	}
	ws, err := workspace.Acquire(cfg.WorkspaceRoot, "doctor")
	if err == nil {
		err = ws.Release()
	}
	if err != nil {
		fmt.Fprintf(w, "  %-9s %s: %v\n", "workspace", root, err)
	} else {
		fmt.Fprintf(w, "  %-9s %s ok\n", "workspace", root)
	}

	if selectedErr != nil {
		return fmt.Errorf("configured backend %q: %w", configured, selectedErr)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
