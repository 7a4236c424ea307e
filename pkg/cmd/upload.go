package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bynder/bynder-go-sdk/pkg/upload"
)

var (
	uploadBrand       string
	uploadMedia       string
	uploadName        string
	uploadTags        []string
	uploadDescription string
	uploadCopyright   string
	uploadPublished   string
	uploadParams      map[string]string
	uploadOptions     map[string]string

	uploadCmd = &cobra.Command{
		Use:   "upload <file>...",
		Short: "upload files as new assets, or as a new version with --media",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if uploadMedia != "" && len(args) > 1 {
				return errors.New("--media accepts a single file")
			}

			var published *time.Time

			if uploadPublished != "" {
				t, err := time.Parse(time.RFC3339, uploadPublished)
				if err != nil {
					return fmt.Errorf("--published: %w", err)
				}

				published = &t
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			var errs []error

			for _, path := range args {
				res, err := client.Upload.Upload(cmd.Context(), &upload.Request{
					FilePath:            path,
					BrandID:             uploadBrand,
					MediaID:             uploadMedia,
					Name:                uploadName,
					Tags:                uploadTags,
					Description:         uploadDescription,
					Copyright:           uploadCopyright,
					IsPublic:            optionalBool(cmd, "public"),
					Audit:               optionalBool(cmd, "audit"),
					DatePublished:       published,
					MetapropertyOptions: splitOptions(uploadOptions),
					CustomParameters:    uploadParams,
				})
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))

					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d chunks\n", path, res.MediaID, res.Summary.Chunks)
			}

			return errors.Join(errs...)
		},
	}
)

// splitOptions turns metaproperty=option1,option2 flags into the option map.
func splitOptions(in map[string]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}

	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = splitList(v)
	}

	return out
}

func registerUploadCommands() {
	f := uploadCmd.Flags()
	f.StringVar(&uploadBrand, "brand", "", "brand id of new assets")
	f.StringVar(&uploadMedia, "media", "", "media id to add a new version to")
	f.StringVar(&uploadName, "name", "", "asset name, defaults to the file name")
	f.StringSliceVar(&uploadTags, "tags", nil, "tags")
	f.StringVar(&uploadDescription, "description", "", "description")
	f.StringVar(&uploadCopyright, "copyright", "", "copyright")
	f.StringVar(&uploadPublished, "published", "", "publication date, RFC 3339")
	f.Bool("public", false, "mark the asset public")
	f.Bool("audit", false, "send the asset to the waiting room")
	f.StringToStringVar(&uploadOptions, "option", nil, "metaproperty id=option ids, comma separated")
	f.StringToStringVar(&uploadParams, "param", nil, "extra finalize parameter key=value")

	rootCmd.AddCommand(uploadCmd)
}
