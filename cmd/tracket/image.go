package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tracketdev/tracket/internal/githost"
	"github.com/tracketdev/tracket/internal/output"
	"github.com/tracketdev/tracket/internal/store"
)

var imageCmd = &cobra.Command{
	Use:     "image",
	Aliases: []string{"img"},
	Short:   "Manage ticket images",
}

// uploadResult is the JSON output structure for image upload.
type uploadResult struct {
	Ticket   string `json:"ticket"`
	Name     string `json:"name"`
	Attached bool   `json:"attached"`
}

var imageUploadCmd = &cobra.Command{
	Use:   "upload <ticket-id> <file>",
	Short: "Upload an image for a ticket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		attach, _ := cmd.Flags().GetBool("attach")

		content, err := os.ReadFile(args[1])
		if err != nil {
			return cmdErr(fmt.Errorf("reading %s: %w", args[1], err), output.ErrValidation)
		}

		name, err := st.UploadImage(cmd.Context(), args[0], filepath.Base(args[1]), content)
		if err != nil {
			// Allow-list and slug checks fail before any network call.
			if githost.ErrorKind(err) == "" {
				return cmdErr(err, output.ErrValidation)
			}
			return hostErr(fmt.Errorf("uploading image: %w", err))
		}

		// Attaching is a separate gated write on the ticket record; the
		// uploaded blob stays in place even if this part conflicts.
		if attach {
			ticket, err := st.GetTicket(cmd.Context(), args[0])
			if err != nil {
				return hostErr(fmt.Errorf("image %s uploaded, but fetching ticket to attach failed: %w", name, err))
			}
			ticket.Images = append(ticket.Images, name)
			if _, err := st.UpdateTicket(cmd.Context(), ticket); err != nil {
				return hostErr(fmt.Errorf("image %s uploaded, but attaching to ticket failed: %w", name, err))
			}
		}

		message := fmt.Sprintf("Uploaded %s for %s", name, args[0])
		if attach {
			message += " (attached)"
		}
		w.Success(uploadResult{Ticket: args[0], Name: name, Attached: attach}, message)
		return nil
	},
}

var imageGetCmd = &cobra.Command{
	Use:   "get <ticket-id> <name>",
	Short: "Download a ticket image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			outPath = args[1]
		}

		content, err := st.FetchImage(cmd.Context(), args[0], args[1])
		if err != nil {
			if errors.Is(err, store.ErrAssetUnavailable) {
				return cmdErr(fmt.Errorf("image %s exists but its content could not be retrieved", args[1]), output.ErrUnavailable)
			}
			if githost.IsNotFound(err) {
				return cmdErr(fmt.Errorf("image %s not found for ticket %s", args[1], args[0]), output.ErrNotFound)
			}
			return hostErr(fmt.Errorf("fetching image: %w", err))
		}

		if err := os.WriteFile(outPath, content, 0o644); err != nil {
			return cmdErr(fmt.Errorf("writing %s: %w", outPath, err), output.ErrGeneral)
		}

		w.Success(map[string]any{"path": outPath, "bytes": len(content)}, fmt.Sprintf("Saved %s (%d bytes)", outPath, len(content)))
		return nil
	},
}

var imageListCmd = &cobra.Command{
	Use:   "list <ticket-id>",
	Short: "List images stored for a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		names, err := st.ListImages(cmd.Context(), args[0])
		if err != nil {
			return hostErr(fmt.Errorf("listing images: %w", err))
		}

		if w.JSONMode {
			if names == nil {
				names = []string{}
			}
			w.Success(map[string]any{"ticket": args[0], "images": names, "total": len(names)}, "")
			return nil
		}

		if len(names) == 0 {
			w.Success(nil, fmt.Sprintf("No images for %s", args[0]))
			return nil
		}

		w.Success(nil, strings.Join(names, "\n"))
		return nil
	},
}

var imageDeleteCmd = &cobra.Command{
	Use:   "delete <ticket-id> <name>",
	Short: "Delete a ticket image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		st := getStore(cmd)

		if err := st.DeleteImage(cmd.Context(), args[0], args[1]); err != nil {
			if githost.IsNotFound(err) {
				return cmdErr(fmt.Errorf("image %s not found for ticket %s", args[1], args[0]), output.ErrNotFound)
			}
			return hostErr(fmt.Errorf("deleting image: %w", err))
		}

		w.Success(deleteResult{ID: args[1]}, fmt.Sprintf("Deleted %s from %s", args[1], args[0]))
		return nil
	},
}

func init() {
	imageUploadCmd.Flags().Bool("attach", false, "Record the image on the ticket after uploading")
	imageGetCmd.Flags().StringP("output", "o", "", "Write the image to this path (defaults to the image name)")
	imageCmd.AddCommand(imageUploadCmd)
	imageCmd.AddCommand(imageGetCmd)
	imageCmd.AddCommand(imageListCmd)
	imageCmd.AddCommand(imageDeleteCmd)
	rootCmd.AddCommand(imageCmd)
}
