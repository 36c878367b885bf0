package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inamate/drawtools/internal/document"
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/render"
)

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample <out.{json,yaml}>",
		Short: "Write a drawing with one shape of every kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := document.SaveScene(args[0], document.NewSampleScene()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		margin, maxSide int
		zoom            float64
	)

	cmd := &cobra.Command{
		Use:   "render <in> <out.{png,pdf,json}>",
		Short: "Render a drawing to PNG, PDF or canvas draw commands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := document.LoadScene(args[0])
			if err != nil {
				return err
			}
			out := args[1]
			canvas := render.Canvas(scene.Bounds(), margin)

			var data []byte
			switch strings.ToLower(filepath.Ext(out)) {
			case ".png":
				r, err := render.NewRasterZoom(canvas, render.FitZoom(canvas, zoom, maxSide), color.White)
				if err != nil {
					return err
				}
				scene.Draw(r)
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				return r.EncodePNG(f)
			case ".pdf":
				p := render.NewPDF(canvas)
				scene.Draw(p)
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				return p.Output(f)
			case ".json":
				js, err := render.DrawCommandsToJSON(render.CompileDrawCommands(scene))
				if err != nil {
					return err
				}
				data = []byte(js)
			default:
				return fmt.Errorf("unsupported output %q: want .png, .pdf or .json", out)
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().IntVar(&margin, "margin", 10, "blank border around the shapes")
	cmd.Flags().IntVar(&maxSide, "max-side", 0, "limit the longer PNG side to this many pixels")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "PNG pixels per canvas unit")
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a drawing between JSON and YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := document.ReadFile(args[0])
			if err != nil {
				return err
			}
			// validate before writing
			if _, err := engine.ReadScene(rec); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return document.WriteFile(args[1], rec)
		},
	}
}

func newInspectCmd() *cobra.Command {
	var format string
	var dump bool

	cmd := &cobra.Command{
		Use:   "inspect <in>",
		Short: "Summarize a drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := document.ReadFile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if dump {
				log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
				e := engine.NewEditor(engine.Options{Logger: log})
				if err := e.Load(rec); err != nil {
					return err
				}
				e.Dump()
				return nil
			}

			scene, err := engine.ReadScene(rec)
			if err != nil {
				return err
			}
			sum := document.Summarize(scene)
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			case "yaml":
				return yaml.NewEncoder(w).Encode(sum)
			}
			return fmt.Errorf("unknown format %q", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: json or yaml")
	cmd.Flags().BoolVar(&dump, "dump", false, "log every shape instead of a summary")
	return cmd
}
