package main

import (
	"fmt"
	"path/filepath"

	"github.com/drakos74/free-spline/infra/config"
	"github.com/drakos74/free-spline/internal/export"
	"github.com/drakos74/free-spline/internal/metrics"
	"github.com/drakos74/free-spline/internal/model"
	"github.com/drakos74/free-spline/internal/server"
	"github.com/drakos74/free-spline/internal/storage"
	"github.com/drakos74/free-spline/internal/storage/file/json"
	"github.com/drakos74/free-spline/internal/surface"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	fitSamples string
	fitConfig  string
	fitType    string
	fitNctlu   int
	fitNctlv   int
	fitName    string
	fitState   string
	fitTecplot string
	fitPNG     string
	fitMetrics int
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit B-spline surfaces to sampled patches",
	Long: `Fit one B-spline surface per sampled patch, either through interpolation or with a
constrained least squares fit. The fitted surface is stored under its name and a fresh run id,
and its report is appended to the report registry.`,
	Args: cobra.NoArgs,
	RunE: runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)
	fitCmd.Flags().StringVarP(&fitSamples, "samples", "s", "samples.json", "Samples file, as written by gen")
	fitCmd.Flags().StringVarP(&fitConfig, "config", "c", "", "Fit config file, the defaults are used if empty")
	fitCmd.Flags().StringVarP(&fitType, "type", "t", "", "Override the fit type (interpolate or lms)")
	fitCmd.Flags().IntVar(&fitNctlu, "nctlu", 0, "Override the number of control points along u")
	fitCmd.Flags().IntVar(&fitNctlv, "nctlv", 0, "Override the number of control points along v")
	fitCmd.Flags().StringVar(&fitName, "name", "wing", "Name to store the surface under")
	fitCmd.Flags().StringVar(&fitState, "state", "", "Also write the fitted state to this file")
	fitCmd.Flags().StringVar(&fitTecplot, "tecplot", "", "Write a tecplot file of the fit")
	fitCmd.Flags().StringVar(&fitPNG, "png", "", "Write section and planform plots into this directory")
	fitCmd.Flags().IntVar(&fitMetrics, "metrics", 0, "Expose the metrics on this port while fitting")
}

func fitSettings() (surface.Config, error) {
	cfg := surface.DefaultConfig()
	if fitConfig != "" {
		if err := config.Load(fitConfig, &cfg); err != nil {
			return cfg, err
		}
	}
	if fitType != "" {
		t, err := surface.ParseFitType(fitType)
		if err != nil {
			return cfg, err
		}
		cfg.FitType = t
	}
	if fitNctlu > 0 {
		cfg.Nctlu = fitNctlu
	}
	if fitNctlv > 0 {
		cfg.Nctlv = fitNctlv
	}
	return cfg, cfg.Validate()
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := fitSettings()
	if err != nil {
		return err
	}

	var samples model.Samples
	if err := json.Read(fitSamples, &samples); err != nil {
		return fmt.Errorf("could not read samples '%s': %w", fitSamples, err)
	}

	if fitMetrics > 0 {
		srv := server.NewServer("metrics", fitMetrics).Handle(metrics.Path, metrics.Handler())
		go func() {
			if err := srv.Run(); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	s, err := surface.New(samples, cfg)
	if err != nil {
		return err
	}

	key := storage.NewKey(fitName, string(cfg.FitType))
	store, err := json.BlobShard(storage.SurfaceDir)(fitName)
	if err != nil {
		return err
	}
	if err := s.Save(store, key); err != nil {
		return err
	}
	registry, err := json.EventRegistry(storage.ReportPath)("")
	if err != nil {
		return err
	}
	if err := registry.Add(key.K(), s.Report()); err != nil {
		return fmt.Errorf("could not register report: %w", err)
	}

	if fitState != "" {
		if err := json.Capture(s.State(), fitState); err != nil {
			return err
		}
	}
	if fitTecplot != "" {
		if err := export.SaveTecplot(fitTecplot, s); err != nil {
			return err
		}
	}
	if fitPNG != "" {
		if err := plots(s, fitPNG); err != nil {
			return err
		}
	}

	r := s.Report()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id: %s\n", key.ID)
	fmt.Fprintf(out, "fit: %s\n", r.Fit)
	if r.Status != "" {
		fmt.Fprintf(out, "status: %s after %d iterations (%d evaluations)\n", r.Status, r.Iterations, r.Evaluations)
	}
	fmt.Fprintf(out, "rms: %e max: %e le: %e\n", r.RMS, r.Max, r.LE)
	return nil
}

func plots(s *surface.Surface, dir string) error {
	planform, err := export.Planform(s)
	if err != nil {
		return err
	}
	if err := export.SavePNG(planform, filepath.Join(dir, "planform.png")); err != nil {
		return err
	}
	nv := s.Samples().Nv()
	for _, j := range []int{0, nv / 2, nv - 1} {
		section, err := export.Section(s, j, 101)
		if err != nil {
			return err
		}
		if err := export.SavePNG(section, filepath.Join(dir, fmt.Sprintf("section_%d.png", j))); err != nil {
			return err
		}
	}
	return nil
}
