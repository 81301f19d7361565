package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/logger"
)

func sampleCmd(g *globalOptions) *cobra.Command {
	var index int
	var datasetDir string

	c := &cobra.Command{
		Use:   "sample",
		Short: "Print one MNIST test sample without contacting the classifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.configPath)
			if err != nil {
				return err
			}

			cleanup := setupLogging(ws.root, g.debug)
			defer cleanup()

			cfg := ws.cfg
			if cmd.Flags().Changed("index") {
				cfg.Sample.Index = index
			}
			if cmd.Flags().Changed("dataset-dir") {
				cfg.Dataset.Dir = datasetDir
			}

			s, err := newSampleSource(cfg, logger.L()).Sample(cmd.Context(), cfg.Sample.Index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Índice da Imagem: %d\n", s.Index)
			fmt.Fprintf(out, "Rótulo Verdadeiro: %d\n\n", s.Label)
			fmt.Fprint(out, asciiDigit(s.Image))
			return nil
		},
	}

	c.Flags().IntVarP(&index, "index", "i", domain.DefaultSampleIndex, "position of the sample in the MNIST test set")
	c.Flags().StringVar(&datasetDir, "dataset-dir", "", "MNIST cache directory (default: user cache dir)")
	return c
}

const asciiRamp = " .:-=+*#%@"

// asciiDigit draws each pixel as two characters so the digit keeps its aspect ratio.
func asciiDigit(img domain.Image) string {
	var b strings.Builder
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := asciiRamp[int(img.At(x, y))*(len(asciiRamp)-1)/255]
			b.WriteByte(c)
			b.WriteByte(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
