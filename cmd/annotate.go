package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/killallgit/waveform-comments/internal/annotate"
	"github.com/killallgit/waveform-comments/internal/client"
	"github.com/killallgit/waveform-comments/internal/waveform"
	"github.com/killallgit/waveform-comments/pkg/config"
	"github.com/spf13/cobra"
)

var (
	annotateAt      float64
	annotateContent string
	annotateDelete  uint64
	annotateToken   string
	annotateTimeout time.Duration
)

// annotateCmd drives an annotation session against a running server
var annotateCmd = &cobra.Command{
	Use:   "annotate <track-id>",
	Short: "Show or add comments on a track",
	Long: `Open a track in a headless waveform session and print its comments.

With --content a draft region is drawn at --at and submitted as a comment.
With --delete the given comment is removed. Both need --token.

Example:
  waveform-comments annotate 3
  waveform-comments annotate 3 --at 40 --content "nice drop" --token $TOKEN
  waveform-comments annotate 3 --delete 12 --token $TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().Float64Var(&annotateAt, "at", 0, "time in seconds to anchor the new comment")
	annotateCmd.Flags().StringVar(&annotateContent, "content", "", "comment text to submit")
	annotateCmd.Flags().Uint64Var(&annotateDelete, "delete", 0, "id of a comment to delete")
	annotateCmd.Flags().StringVar(&annotateToken, "token", "", "bearer token from the token command")
	annotateCmd.Flags().DurationVar(&annotateTimeout, "timeout", 30*time.Second, "time allowed for the whole session")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	var trackID uint
	if _, err := fmt.Sscanf(args[0], "%d", &trackID); err != nil || trackID == 0 {
		return fmt.Errorf("invalid track id %q", args[0])
	}
	if (annotateContent != "" || annotateDelete != 0) && annotateToken == "" {
		return fmt.Errorf("--token is required to add or delete comments")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), annotateTimeout)
	defer cancel()

	api := newAPIClient(cfg)
	return annotateTrack(ctx, cmd.OutOrStdout(), api, cfg.Annotation, annotateRequest{
		TrackID: trackID,
		Token:   annotateToken,
		At:      annotateAt,
		Content: annotateContent,
		Delete:  annotateDelete,
	})
}

type annotateRequest struct {
	TrackID uint
	Token   string
	At      float64
	Content string
	Delete  uint64
}

// annotateTrack opens the track, applies the requested change and prints
// the comments the session ends up with
func annotateTrack(ctx context.Context, out io.Writer, api *client.Client, settings config.AnnotationConfig, req annotateRequest) error {
	track, err := api.GetTrack(ctx, req.TrackID)
	if err != nil {
		return err
	}

	var identity annotate.Identity
	if req.Token != "" {
		user, err := api.Me(ctx, req.Token)
		if err != nil {
			return err
		}
		identity = annotate.Identity{UserID: user.ID, UserName: user.Name, Token: req.Token}
	}

	ready := make(chan struct{})
	var readyOnce sync.Once

	opts := []annotate.Option{
		annotate.WithDebounce(settings.DebounceDelay),
		annotate.WithDraftLength(settings.DraftLength),
		annotate.WithMarkerLength(settings.MarkerLength),
		annotate.WithListener(func(s annotate.Snapshot) {
			if s.Ready {
				readyOnce.Do(func() { close(ready) })
			}
		}),
	}
	if palette := paletteFrom(settings); palette != (annotate.Palette{}) {
		opts = append(opts, annotate.WithPalette(palette))
	}

	factory := &waveform.HeadlessFactory{Width: settings.SurfaceWidth, AutoLoad: true}
	session := annotate.NewSession(api, factory, annotate.StaticAuth{Identity: identity}, opts...)
	defer func() {
		session.Close()
		session.WaitClosed()
	}()

	if err := session.Open(ctx, waveform.Track{ID: track.ID, FilePath: track.FilePath, Duration: track.Duration}); err != nil {
		return err
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return fmt.Errorf("waiting for track %d to load: %w", track.ID, ctx.Err())
	}
	// the initial load is in flight once the surface reports ready
	session.Wait()

	if req.Delete != 0 {
		if err := session.DeleteComment(ctx, annotate.ConfirmedID(req.Delete)); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted comment %d\n", req.Delete)
	}

	if req.Content != "" {
		if session.StartDraftRegion(req.At) == nil {
			return fmt.Errorf("cannot place a comment at %.2fs", req.At)
		}
		id, err := session.Submit(ctx, req.Content)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created comment %s at %.2fs\n", id, req.At)
	}

	printSnapshot(out, track, session.Snapshot())
	return nil
}

func paletteFrom(settings config.AnnotationConfig) annotate.Palette {
	if settings.DefaultColor == "" && settings.SelectedColor == "" && settings.DraftColor == "" {
		return annotate.Palette{}
	}
	palette := annotate.DefaultPalette()
	if settings.DefaultColor != "" {
		palette.Default = settings.DefaultColor
	}
	if settings.SelectedColor != "" {
		palette.Selected = settings.SelectedColor
	}
	if settings.DraftColor != "" {
		palette.Draft = settings.DraftColor
	}
	return palette
}

func printSnapshot(out io.Writer, track *client.Track, snap annotate.Snapshot) {
	fmt.Fprintf(out, "%s (%.1fs): %d comment(s)\n", track.Title, track.Duration, len(snap.Comments))
	for _, c := range snap.Comments {
		at := "-"
		if c.Marker != nil {
			at = fmt.Sprintf("%.2fs", c.Marker.Time)
		}
		fmt.Fprintf(out, "  [%s] %s %s: %s\n", c.ID, at, c.UserName, c.Content)
	}
}
