package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bynder/bynder-go-sdk/pkg/collection"
)

var (
	collectionsQuery collection.ListQuery
	createQuery      collection.CreateQuery
	shareQuery       collection.ShareQuery
	sharePermission  string
	shareDuration    time.Duration

	collectionsCmd = &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection"},
		Short:   "collection subcommands",
	}

	collectionsListCmd = &cobra.Command{
		Use:   "list",
		Short: "list collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			cs, err := client.Collections.GetCollections(cmd.Context(), collectionsQuery)
			if err != nil {
				return err
			}

			return printJSON(cmd, cs)
		},
	}

	collectionsInfoCmd = &cobra.Command{
		Use:   "info <id>",
		Short: "show one collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			c, err := client.Collections.GetCollection(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, c)
		},
	}

	collectionsMediaCmd = &cobra.Command{
		Use:   "media <id>",
		Short: "list the media ids of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			ids, err := client.Collections.GetCollectionMedia(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd, ids)
		},
	}

	collectionsCreateCmd = &cobra.Command{
		Use:   "create <name>",
		Short: "create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			q := createQuery
			q.Name = args[0]

			return client.Collections.CreateCollection(cmd.Context(), q)
		},
	}

	collectionsAddCmd = &cobra.Command{
		Use:   "add <id> <media-id>...",
		Short: "add media to a collection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			return client.Collections.AddMediaToCollection(cmd.Context(),
				collection.AddMediaQuery{ID: args[0], MediaIDs: args[1:]})
		},
	}

	collectionsRemoveCmd = &cobra.Command{
		Use:   "remove <id> <media-id>...",
		Short: "remove media from a collection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			return client.Collections.RemoveMediaFromCollection(cmd.Context(),
				collection.RemoveMediaQuery{ID: args[0], MediaIDs: args[1:]})
		},
	}

	collectionsShareCmd = &cobra.Command{
		Use:   "share <id>",
		Short: "share a collection with recipients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := shareQuery
			q.ID = args[0]
			q.LoginRequired = optionalBool(cmd, "login-required")
			q.SendMail = optionalBool(cmd, "send-mail")

			if sharePermission != "" {
				p, err := collection.ParsePermission(sharePermission)
				if err != nil {
					return err
				}

				q.Permission = &p
			}

			if shareDuration > 0 {
				start := time.Now().UTC()
				end := start.Add(shareDuration)
				q.DateStart, q.DateEnd = &start, &end
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			return client.Collections.ShareCollection(cmd.Context(), q)
		},
	}

	collectionsDeleteCmd = &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Collections.DeleteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])

			return nil
		},
	}
)

func registerCollectionCommands() {
	lf := collectionsListCmd.Flags()
	lf.StringVar(&collectionsQuery.Keyword, "keyword", "", "search keyword")
	lf.IntVar(&collectionsQuery.Limit, "limit", 50, "page size")
	lf.IntVar(&collectionsQuery.Page, "page", 1, "page number")
	lf.StringVar(&collectionsQuery.OrderBy, "order-by", "", "e.g. \"name asc\"")

	collectionsCreateCmd.Flags().StringVar(&createQuery.Description, "description", "", "description")

	sf := collectionsShareCmd.Flags()
	sf.StringSliceVar(&shareQuery.Recipients, "recipients", nil, "recipient email addresses")
	sf.StringVar(&sharePermission, "permission", "view", "view or edit")
	sf.StringVar(&shareQuery.Message, "message", "", "message for the recipients")
	sf.DurationVar(&shareDuration, "for", 0, "share for this long, starting now")
	sf.Bool("login-required", false, "require recipients to log in")
	sf.Bool("send-mail", true, "email the recipients")

	collectionsCmd.AddCommand(
		collectionsListCmd,
		collectionsInfoCmd,
		collectionsMediaCmd,
		collectionsCreateCmd,
		collectionsAddCmd,
		collectionsRemoveCmd,
		collectionsShareCmd,
		collectionsDeleteCmd,
	)
	rootCmd.AddCommand(collectionsCmd)
}
