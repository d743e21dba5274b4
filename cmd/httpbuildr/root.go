// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/httpbuildr/config"
	"github.com/z5labs/httpbuildr/httpclient"
	"github.com/z5labs/httpbuildr/httpruntime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "HTTPBUILDR"

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	var logger *zap.Logger
	cmd := &cobra.Command{
		Use:           "httpbuildr",
		Short:         "Send JSON calls through named HTTP clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))

			ctx, err := withRuntime(cmd.Context(), v, zapslog.NewHandler(logger.Core()))
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.String("config", "", "path to a YAML file registering named clients")
	flags.Bool("verbose", false, "log every call and request")
	flags.String("encoding", httpruntime.DefaultEncoding, "charset requested from servers")
	flags.StringArrayP("header", "H", nil, "extra request header formatted as 'Name: value'")

	for _, name := range []string{"config", "verbose", "encoding"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(
		newGetCmd(),
		newPostCmd(),
	)
	return cmd
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

func withRuntime(ctx context.Context, v *viper.Viper, h slog.Handler) (context.Context, error) {
	var srcs []config.Source
	if path := v.GetString("config"); path != "" {
		srcs = append(srcs, fileSource(path))
	}
	srcs = append(srcs, config.FromEnv(config.EnvPrefix(envPrefix)))

	m, err := config.Read(srcs...)
	if err != nil {
		return nil, err
	}

	cfg, err := httpruntime.ConfigFromManager(m)
	if err != nil {
		return nil, err
	}

	clients := httpruntime.RegistryFromConfig(cfg, httpclient.LogHandler(h))
	rt, err := httpruntime.New(
		clients,
		httpruntime.LogHandler(h),
		httpruntime.Encoding(v.GetString("encoding")),
	)
	if err != nil {
		return nil, err
	}
	return httpruntime.NewContext(ctx, rt), nil
}

// fileSource picks the format from the extension. Anything but .json is YAML.
func fileSource(path string) config.Source {
	f := config.NewFileReader(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	r := config.RenderTextTemplate(f)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return config.FromJson(r)
	}
	return config.FromYaml(r)
}
