package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prbarprep/barprep-go/internal/api"
	"github.com/prbarprep/barprep-go/internal/format"
	"github.com/prbarprep/barprep-go/internal/models"
)

func newMaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage uploaded study materials",
	}
	cmd.AddCommand(newMaterialsListCmd())
	cmd.AddCommand(newMaterialsUploadCmd())
	cmd.AddCommand(newMaterialsDeleteCmd())
	return cmd
}

func newMaterialsListCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List study materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			var materials []models.StudyMaterial
			if subject != "" {
				materials, err = a.client.MaterialsBySubject(cmd.Context(), subject)
			} else {
				materials, err = a.client.UserMaterials(cmd.Context(), a.sess.UserID)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, material := range materials {
				marker := " "
				if material.IsOfficial {
					marker = "*"
				}
				fmt.Fprintf(out, "#%-5d %s %-40s %-10s %s\n",
					material.ID, marker, material.Title, material.FileType, format.Date(material.UploadedAt))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "list a subject's materials instead of your own")
	return cmd
}

func newMaterialsUploadCmd() *cobra.Command {
	var (
		subject  string
		title    string
		official bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a study document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if title == "" {
				title = filepath.Base(args[0])
			}

			material, err := a.client.UploadMaterial(cmd.Context(), a.sess.UserID, api.MaterialUpload{
				Subject:    subject,
				Title:      title,
				IsOfficial: official,
				Filename:   filepath.Base(args[0]),
				Data:       data,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded #%d (%s)\n", material.ID, material.FileType)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "subject code the material belongs to")
	cmd.Flags().StringVar(&title, "title", "", "display title (defaults to the file name)")
	cmd.Flags().BoolVar(&official, "official", false, "mark as official bar material")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newMaterialsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an uploaded material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			materialID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid material id %q", args[0])
			}
			return a.client.DeleteMaterial(cmd.Context(), materialID)
		},
	}
}
