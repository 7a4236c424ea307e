package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bynder/bynder-go-sdk/pkg/asset"
	"github.com/Bynder/bynder-go-sdk/pkg/query"
)

var (
	listQuery   asset.MediaQuery
	listType    string
	infoVersion bool
	modifyQuery asset.ModifyMediaQuery
	modifyDesc  string
	modifyCopy  string
	modifyDate  string
	downloadFor string
	tagsQuery   asset.TagsQuery

	mediaCmd = &cobra.Command{
		Use:   "media",
		Short: "media subcommands",
	}

	mediaListCmd = &cobra.Command{
		Use:   "list",
		Short: "list media",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := listQuery
			if listType != "" {
				t, err := asset.ParseMediaType(listType)
				if err != nil {
					return err
				}

				q.Type = &t
			}

			q.IsPublic = optionalBool(cmd, "public")

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			page, err := client.Assets.GetMediaList(cmd.Context(), q)
			if err != nil {
				return err
			}

			if q.IncludeTotal {
				fmt.Fprintf(cmd.ErrOrStderr(), "total: %d\n", page.Total)
			}

			return printJSON(cmd, page.Media)
		},
	}

	mediaInfoCmd = &cobra.Command{
		Use:   "info <id>",
		Short: "show one media",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			media, err := client.Assets.GetMediaInfo(cmd.Context(), asset.MediaInfoQuery{ID: args[0], Versions: infoVersion})
			if err != nil {
				return err
			}

			return printJSON(cmd, media)
		},
	}

	mediaModifyCmd = &cobra.Command{
		Use:   "modify <id>",
		Short: "change the metadata of a media; pass an empty value to clear description, copyright or published",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := modifyQuery
			q.ID = args[0]
			q.Description = erasableFlag(cmd, "description", modifyDesc)
			q.Copyright = erasableFlag(cmd, "copyright", modifyCopy)
			q.Archive = optionalBool(cmd, "archive")
			q.IsPublic = optionalBool(cmd, "public")

			if cmd.Flags().Changed("published") {
				if modifyDate == "" {
					q.DatePublished = query.Clear[time.Time]()
				} else {
					t, err := time.Parse(time.RFC3339, modifyDate)
					if err != nil {
						return fmt.Errorf("--published: %w", err)
					}

					q.DatePublished = query.Some(t)
				}
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			return client.Assets.ModifyMedia(cmd.Context(), q)
		},
	}

	mediaDeleteCmd = &cobra.Command{
		Use:   "delete <id>...",
		Short: "delete media",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			for _, id := range args {
				if err := client.Assets.DeleteMedia(cmd.Context(), id); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
			}

			return nil
		},
	}

	mediaDownloadCmd = &cobra.Command{
		Use:   "download-url <id>",
		Short: "print a temporary download link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			u, err := client.Assets.GetDownloadURL(cmd.Context(), args[0], downloadFor)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), u.S3File)

			return nil
		},
	}

	brandsCmd = &cobra.Command{
		Use:   "brands",
		Short: "list brands",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			brands, err := client.Assets.GetBrands(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd, brands)
		},
	}

	metapropertiesCmd = &cobra.Command{
		Use:   "metaproperties",
		Short: "list metaproperties with their options",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			props, err := client.Assets.GetMetaproperties(cmd.Context(), asset.MetapropertiesQuery{Options: true})
			if err != nil {
				return err
			}

			return printJSON(cmd, props)
		},
	}

	tagsCmd = &cobra.Command{
		Use:   "tags",
		Short: "list tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			tags, err := client.Assets.GetTags(cmd.Context(), tagsQuery)
			if err != nil {
				return err
			}

			return printJSON(cmd, tags)
		},
	}

	tagCmd = &cobra.Command{
		Use:   "tag <tag-id> <media-id>...",
		Short: "attach a tag to media",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			return client.Assets.AddTagToMedia(cmd.Context(), asset.AddTagQuery{TagID: args[0], MediaIDs: args[1:]})
		},
	}
)

// erasableFlag maps a string flag to an Optional: absent is unset, empty clears.
func erasableFlag(cmd *cobra.Command, name, value string) query.Optional[string] {
	if !cmd.Flags().Changed(name) {
		return query.Optional[string]{}
	}

	if value == "" {
		return query.Clear[string]()
	}

	return query.Some(value)
}

func splitList(s string) []string {
	var out []string

	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func registerMediaCommands() {
	lf := mediaListCmd.Flags()
	lf.StringVar(&listType, "type", "", "image, document, audio or video")
	lf.StringVar(&listQuery.Keyword, "keyword", "", "search keyword")
	lf.IntVar(&listQuery.Limit, "limit", 50, "page size")
	lf.IntVar(&listQuery.Page, "page", 1, "page number")
	lf.StringVar(&listQuery.BrandID, "brand", "", "brand id")
	lf.StringVar(&listQuery.SubBrandID, "sub-brand", "", "sub-brand id")
	lf.StringVar(&listQuery.CategoryID, "category", "", "category id")
	lf.StringSliceVar(&listQuery.PropertyOptionIDs, "option", nil, "metaproperty option ids")
	lf.StringSliceVar(&listQuery.Tags, "tags", nil, "tags")
	lf.StringSliceVar(&listQuery.IDs, "ids", nil, "media ids")
	lf.StringVar(&listQuery.OrderBy, "order-by", "", "e.g. \"dateCreated desc\"")
	lf.Bool("public", false, "only public (true) or private (false) media")
	lf.BoolVar(&listQuery.IncludeTotal, "total", false, "print the total count to stderr")

	mediaInfoCmd.Flags().BoolVar(&infoVersion, "versions", false, "include file versions")

	mf := mediaModifyCmd.Flags()
	mf.StringVar(&modifyQuery.Name, "name", "", "new name")
	mf.StringVar(&modifyDesc, "description", "", "new description, empty to clear")
	mf.StringVar(&modifyCopy, "copyright", "", "new copyright, empty to clear")
	mf.StringVar(&modifyDate, "published", "", "publication date, RFC 3339, empty to clear")
	mf.StringSliceVar(&modifyQuery.Tags, "tags", nil, "replace the tags")
	mf.Bool("archive", false, "archive the media")
	mf.Bool("public", false, "mark the media public")

	mediaDownloadCmd.Flags().StringVar(&downloadFor, "item", "", "media item id of a specific version")

	tf := tagsCmd.Flags()
	tf.StringVar(&tagsQuery.Keyword, "keyword", "", "search keyword")
	tf.IntVar(&tagsQuery.Limit, "limit", 50, "page size")
	tf.IntVar(&tagsQuery.MinCount, "min-count", 0, "minimum number of media")

	mediaCmd.AddCommand(mediaListCmd, mediaInfoCmd, mediaModifyCmd, mediaDeleteCmd, mediaDownloadCmd)
	rootCmd.AddCommand(mediaCmd, brandsCmd, metapropertiesCmd, tagsCmd, tagCmd)
}
