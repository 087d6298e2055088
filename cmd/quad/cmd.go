/*
Copyright © 2021 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/numerical/internal/job"
	"github.com/spatialmodel/numerical/plot"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version is the version of the program.
const Version = "0.3.0"

// Cfg holds the command line configuration.
type Cfg struct {
	*viper.Viper

	Root, integrateCmd, gridCmd, plotCmd, versionCmd *cobra.Command
}

// NewCfg builds the command tree. Every flag can also be set with an
// environment variable prefixed with QUAD_, for example QUAD_OUTPUT.
func NewCfg() *Cfg {
	cfg := &Cfg{Viper: viper.New()}
	cfg.SetEnvPrefix("QUAD")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	cfg.Root = &cobra.Command{
		Use:   "quad",
		Short: "Batched Gauss-Legendre integration over uniform grids.",
		Long: `quad computes definite integrals of functions of 1 to 3 variables
over cartesian or polar regions. Jobs are read from a TOML file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags with the same name belong to different subcommands,
			// so only the running command's flags are bound.
			var err error
			cmd.Flags().VisitAll(func(f *pflag.Flag) {
				if err == nil {
					err = cfg.BindPFlag(f.Name, f)
				}
			})
			if err != nil {
				return err
			}
			lvl, err := logrus.ParseLevel(cfg.GetString("log-level"))
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			return nil
		},
	}

	cfg.versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quad v%s\n", Version)
		},
	}

	cfg.integrateCmd = &cobra.Command{
		Use:   "integrate",
		Short: "Run all jobs in the configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.integrate(cmd.Context(), cmd)
		},
	}

	cfg.gridCmd = &cobra.Command{
		Use:   "grid",
		Short: "Export the grid of a job to a spreadsheet or a shapefile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.grid(cmd)
		},
	}

	cfg.plotCmd = &cobra.Command{
		Use:   "plot",
		Short: "Draw the region or grid of a job.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cfg.plot(cmd.Context(), cmd)
		},
	}

	cfg.Root.AddCommand(cfg.versionCmd, cfg.integrateCmd, cfg.gridCmd, cfg.plotCmd)

	for _, o := range []struct {
		name, shorthand, usage string
		defaultVal         interface{}
		flags              []*pflag.FlagSet
	}{
		{
			name: "config", shorthand: "c",
			usage:      "path to the TOML job file",
			defaultVal: "jobs.toml",
			flags:      []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name:       "log-level",
			usage:      "logging level: debug, info, warn or error",
			defaultVal: "info",
			flags:      []*pflag.FlagSet{cfg.Root.PersistentFlags()},
		},
		{
			name: "output", shorthand: "o",
			usage:      "bucket URL for results and images, such as file:///tmp/out or mem://",
			defaultVal: "",
			flags:      []*pflag.FlagSet{cfg.integrateCmd.Flags(), cfg.plotCmd.Flags()},
		},
		{
			name:       "limit",
			usage:      "maximum number of concurrent jobs; overrides the job file when positive",
			defaultVal: 0,
			flags:      []*pflag.FlagSet{cfg.integrateCmd.Flags()},
		},
		{
			name: "verbose", shorthand: "v",
			usage:      "print the decoded jobs",
			defaultVal: false,
			flags:      []*pflag.FlagSet{cfg.integrateCmd.Flags()},
		},
		{
			name:       "job",
			usage:      "name of the job to use",
			defaultVal: "",
			flags:      []*pflag.FlagSet{cfg.gridCmd.Flags(), cfg.plotCmd.Flags()},
		},
		{
			name:       "xlsx",
			usage:      "path of the spreadsheet to write",
			defaultVal: "",
			flags:      []*pflag.FlagSet{cfg.gridCmd.Flags()},
		},
		{
			name:       "shp",
			usage:      "directory to write a shapefile of a 2-D cartesian grid to",
			defaultVal: "",
			flags:      []*pflag.FlagSet{cfg.gridCmd.Flags()},
		},
		{
			name:       "format",
			usage:      "image format: png, svg, pdf or eps",
			defaultVal: "png",
			flags:      []*pflag.FlagSet{cfg.plotCmd.Flags()},
		},
		{
			name:       "region",
			usage:      "draw the region outline instead of the grid",
			defaultVal: false,
			flags:      []*pflag.FlagSet{cfg.plotCmd.Flags()},
		},
		{
			name:       "open",
			usage:      "open the image after writing it to a local file",
			defaultVal: false,
			flags:      []*pflag.FlagSet{cfg.plotCmd.Flags()},
		},
	} {
		for _, set := range o.flags {
			switch v := o.defaultVal.(type) {
			case string:
				set.StringP(o.name, o.shorthand, v, o.usage)
			case int:
				set.IntP(o.name, o.shorthand, v, o.usage)
			case bool:
				set.BoolP(o.name, o.shorthand, v, o.usage)
			default:
				panic(fmt.Errorf("invalid flag type %T", v))
			}
		}
	}
	return cfg
}

func (cfg *Cfg) readConfig() (*job.Config, error) {
	c, err := job.ReadConfig(cfg.GetString("config"))
	if err != nil {
		return nil, err
	}
	if l := cfg.GetInt("limit"); l > 0 {
		c.Limit = l
	}
	return c, nil
}

func (cfg *Cfg) findJob() (*job.Job, error) {
	c, err := cfg.readConfig()
	if err != nil {
		return nil, err
	}
	name := cfg.GetString("job")
	if name == "" {
		if len(c.Job) != 1 {
			return nil, fmt.Errorf("quad: the --job flag is required when the file has %d jobs", len(c.Job))
		}
		return &c.Job[0], nil
	}
	return c.Find(name)
}

func (cfg *Cfg) integrate(ctx context.Context, cmd *cobra.Command) error {
	c, err := cfg.readConfig()
	if err != nil {
		return err
	}
	if cfg.GetBool("verbose") {
		fmt.Fprintln(cmd.OutOrStdout(), pretty.Sprint(c))
	}
	results, err := job.Run(ctx, c.Job, c.Limit)
	if err != nil {
		return err
	}
	var failed int
	for _, r := range results {
		if r.Error != "" {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "%s\terror: %s\n", r.Name, r.Error)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.10g\n", r.Name, r.Value)
	}
	if url := cfg.GetString("output"); url != "" {
		s, err := job.OpenSink(ctx, url)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.WriteResults(ctx, "results.toml", results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("quad: %d of %d jobs failed", failed, len(results))
	}
	return nil
}

func (cfg *Cfg) grid(cmd *cobra.Command) error {
	j, err := cfg.findJob()
	if err != nil {
		return err
	}
	g, err := j.BuildGrid()
	if err != nil {
		return err
	}
	xlsxPath, shpDir := cfg.GetString("xlsx"), cfg.GetString("shp")
	if xlsxPath == "" && shpDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), g)
		return nil
	}
	if xlsxPath != "" {
		f, err := os.Create(xlsxPath)
		if err != nil {
			return err
		}
		if err := g.WriteXLSX(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if shpDir != "" {
		if err := g.WriteToShp(shpDir, j.Name); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *Cfg) plot(ctx context.Context, cmd *cobra.Command) error {
	j, err := cfg.findJob()
	if err != nil {
		return err
	}
	var b bytes.Buffer
	format := cfg.GetString("format")
	if cfg.GetBool("region") {
		r, err := j.BuildRegion()
		if err != nil {
			return err
		}
		p, err := plot.Region(r)
		if err != nil {
			return err
		}
		if err := plot.WriteTo(&b, p, format); err != nil {
			return err
		}
	} else {
		g, err := j.BuildGrid()
		if err != nil {
			return err
		}
		p, err := plot.Grid(g)
		if err != nil {
			return err
		}
		if err := plot.WriteTo(&b, p, format); err != nil {
			return err
		}
	}

	name := j.Name + "." + format
	if url := cfg.GetString("output"); url != "" {
		s, err := job.OpenSink(ctx, url)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.Write(ctx, name, b.Bytes())
	}
	if err := os.WriteFile(name, b.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), name)
	if cfg.GetBool("open") {
		path, err := filepath.Abs(name)
		if err != nil {
			return err
		}
		return open.Run(path)
	}
	return nil
}
