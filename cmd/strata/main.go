package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stratakv/strata/internal/config"
	"github.com/stratakv/strata/internal/logging"
	"github.com/stratakv/strata/kv"
	"github.com/stratakv/strata/localstore"
	"go.uber.org/zap"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Interact with a strata object store backed by an embedded replica",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	setupFlags(rootCmd)
	rootCmd.AddCommand(newPutCmd(), newGetCmd(), newHeadCmd(), newDeleteCmd(), newSiblingsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("database-path", defaults.GetString("database.path"), "SQLite database path")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("client-id", defaults.GetString("client.id"), "Writer identity for causality")

	bindFlag(cmd, "database.path", "database-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "client.id", "client-id")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if cfgFile != "" && errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}

type appEnv struct {
	cfg    config.AppConfig
	logger *zap.Logger
	client *kv.Client
}

func newEnv() (*appEnv, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := localstore.Open(cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	client, err := kv.NewClient(kv.ClientConfig{
		Transport: store,
		Logger:    logger,
		ClientID:  cfg.ClientID,
		Defaults:  cfg.Quorums,
	})
	if err != nil {
		return nil, err
	}

	return &appEnv{cfg: cfg, logger: logger, client: client}, nil
}

func (env *appEnv) close() {
	_ = env.logger.Sync()
}

func newPutCmd() *cobra.Command {
	var contentType string
	var noReturnBody bool
	var ifNoneMatch bool

	cmd := &cobra.Command{
		Use:   "put <bucket> <key|-> <value>",
		Short: "Store a value; pass '-' as the key to let the store assign one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			bucket := env.client.Bucket(args[0])

			var obj *kv.Object
			if args[1] == "-" {
				obj = bucket.NewObject("")
			} else {
				obj, err = bucket.Get(ctx, args[1], kv.GetOptions{})
				if err != nil {
					return err
				}
			}

			obj.SetValue(parseValue(args[2]))
			if contentType != "" {
				obj.SetContentType(contentType)
			}

			opts := kv.DefaultStoreOptions()
			opts.ReturnBody = !noReturnBody
			opts.IfNoneMatch = ifNoneMatch
			if err := obj.Store(ctx, opts); err != nil {
				return err
			}
			return printObject(cmd, obj)
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type of the value")
	cmd.Flags().BoolVar(&noReturnBody, "no-return-body", false, "Skip reading the stored object back")
	cmd.Flags().BoolVar(&ifNoneMatch, "if-none-match", false, "Refuse the write if the key already exists")
	return cmd
}

func newGetCmd() *cobra.Command {
	var vtag string

	cmd := &cobra.Command{
		Use:   "get <bucket> <key>",
		Short: "Read an object, optionally scoped to a version tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			obj, err := env.client.Bucket(args[0]).Get(cmd.Context(), args[1], kv.GetOptions{VTag: vtag})
			if err != nil {
				return err
			}
			return printObject(cmd, obj)
		},
	}

	cmd.Flags().StringVar(&vtag, "vtag", "", "Version tag of a specific sibling")
	return cmd
}

func newHeadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "head <bucket> <key>",
		Short: "Read an object's metadata without its payload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			obj := env.client.Bucket(args[0]).NewObject(args[1])
			if err := obj.Head(cmd.Context(), kv.GetOptions{}); err != nil {
				return err
			}
			return printObject(cmd, obj)
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <bucket> <key>",
		Short: "Delete an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			obj := env.client.Bucket(args[0]).NewObject(args[1])
			if err := obj.Delete(cmd.Context(), kv.DeleteOptions{}); err != nil {
				return err
			}
			cmd.Printf("deleted %s/%s\n", args[0], args[1])
			return nil
		},
	}
}

func newSiblingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "siblings <bucket> <key>",
		Short: "List every conflicting version of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			ctx := cmd.Context()
			obj, err := env.client.Bucket(args[0]).Get(ctx, args[1], kv.GetOptions{})
			if err != nil {
				return err
			}
			if !obj.HasSiblings() {
				return printObject(cmd, obj)
			}

			siblings, err := obj.Siblings(ctx, kv.GetOptions{})
			if err != nil {
				return err
			}
			for i, sibling := range siblings {
				cmd.Printf("sibling %d:\n", i)
				if err := printObject(cmd, sibling); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// parseValue treats valid JSON input as a structured value and anything
// else as a plain string.
func parseValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err == nil {
		return value
	}
	return raw
}

func printObject(cmd *cobra.Command, obj *kv.Object) error {
	view := map[string]any{
		"bucket":       obj.Bucket().Name(),
		"key":          obj.Key(),
		"exists":       obj.Exists(),
		"content_type": obj.ContentType(),
		"value":        obj.Value(),
		"vclock":       base64.StdEncoding.EncodeToString(obj.VClock()),
		"siblings":     obj.SiblingCount(),
	}
	if userMeta := obj.UserMeta(); len(userMeta) > 0 {
		view["user_meta"] = userMeta
	}
	rendered, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(rendered))
	return nil
}
