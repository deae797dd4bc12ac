package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ytget/yt-snippet/internal/api"
	"github.com/ytget/yt-snippet/internal/config"
	"github.com/ytget/yt-snippet/internal/extract"
	"github.com/ytget/yt-snippet/internal/history"
	"github.com/ytget/yt-snippet/internal/metadata"
	"github.com/ytget/yt-snippet/internal/model"
	"github.com/ytget/yt-snippet/internal/platform"
	"github.com/ytget/yt-snippet/internal/storage"
	"github.com/ytget/yt-snippet/internal/validate"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const cancelTimeout = 15 * time.Second

type options struct {
	url      string
	start    string
	end      string
	full     bool
	format   string
	filename string
	topic    string
	author   string

	showHistory  bool
	clearHistory bool
	export       string
	playlist     bool

	saveDir string
	open    bool
	envFile string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.url, "url", "", "YouTube video URL")
	flag.StringVar(&o.start, "start", validate.DefaultStartTime, "snippet start (SS, MM:SS or HH:MM:SS)")
	flag.StringVar(&o.end, "end", "", "snippet end (SS, MM:SS or HH:MM:SS)")
	flag.BoolVar(&o.full, "full", false, "extract the full video")
	flag.StringVar(&o.format, "format", string(model.DefaultFormat), "output format: mp3, wav or mp4")
	flag.StringVar(&o.filename, "filename", "", "custom output file name")
	flag.StringVar(&o.topic, "topic", "", "topic tag")
	flag.StringVar(&o.author, "author", "", "author tag")
	flag.BoolVar(&o.showHistory, "history", false, "print the extraction history and exit")
	flag.BoolVar(&o.clearHistory, "clear-history", false, "clear the extraction history and exit")
	flag.StringVar(&o.export, "export", "", "export the history to an .xlsx file and exit")
	flag.BoolVar(&o.playlist, "playlist", false, "list the videos of the playlist in -url and exit")
	flag.StringVar(&o.saveDir, "save", "", "directory to save the result to (default: SNIPPET_DOWNLOAD_DIR)")
	flag.BoolVar(&o.open, "open", false, "open the saved file when done")
	flag.StringVar(&o.envFile, "env", ".env", "path to a .env file")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	// Setup logger
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	db, err := storage.OpenSQLite(cfg.HistoryDB)
	if err != nil {
		logger.Fatalf("Failed to open history database: %v", err)
	}
	defer db.Close()

	store := history.NewStore(db, logger)
	if err := store.Load(); err != nil {
		logger.Fatalf("Failed to load history: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger))

	switch {
	case opts.showHistory:
		printHistory(os.Stdout, store.Records(), client.DownloadURL)
		return
	case opts.clearHistory:
		cleared, err := store.Clear(func() bool { return confirm(os.Stdin, os.Stdout, "Clear all history?") })
		if err != nil {
			logger.Fatalf("Failed to clear history: %v", err)
		}
		if cleared {
			fmt.Println("History cleared")
		}
		return
	case opts.export != "":
		if err := exportHistory(opts.export, store.Records(), client.DownloadURL); err != nil {
			logger.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("History exported to %s\n", opts.export)
		return
	}

	if opts.url == "" {
		fmt.Println("Usage: yt-snippet-cli -url <video-url> [-start 1:30 -end 2:45 | -full] [-format mp3|wav|mp4]")
		fmt.Println("\nExample:")
		fmt.Println("  yt-snippet-cli -url https://www.youtube.com/watch?v=dQw4w9WgXcQ -start 0:30 -end 1:00")
		fmt.Println("  yt-snippet-cli -history")
		os.Exit(1)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.playlist {
		if err := listPlaylist(ctx, os.Stdout, opts.url); err != nil {
			logger.Fatalf("Playlist failed: %v", err)
		}
		return
	}

	logger.Printf("=== YT Snippet CLI v%s ===", version)
	logger.Printf("Service: %s", cfg.APIBaseURL)

	resolver := metadata.NewResolver(client, metadata.WithDelay(cfg.Debounce), metadata.WithLogger(logger))
	defer resolver.Stop()
	controller := extract.NewController(client, store,
		extract.WithPollInterval(cfg.PollInterval), extract.WithLogger(logger))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Println("Received interrupt signal, cancelling...")
		cancel()
		// a job still being created is cancelled by runExtraction once its id is known
		cancelJob(controller, logger)
	}()

	snap, err := runExtraction(ctx, opts, resolver, controller, logger)
	if errors.Is(err, context.Canceled) || (err == nil && snap.State == model.JobStateIdle) {
		fmt.Println("Extraction interrupted")
		os.Exit(1)
	}
	if err != nil {
		logger.Printf("Extraction failed: %v", err)
		os.Exit(1)
	}

	switch snap.State {
	case model.JobStateCompleted:
	case model.JobStateCancelled:
		fmt.Println("Extraction cancelled")
		os.Exit(1)
	default:
		logger.Printf("Extraction failed: %v", snap.Err())
		os.Exit(1)
	}

	dir := opts.saveDir
	if dir == "" {
		dir = cfg.DownloadDir
	}
	path, err := platform.SaveStream(dir, suggestedName(opts, snap), func(w io.Writer) (string, error) {
		return client.Download(context.Background(), snap.JobID(), w)
	})
	if err != nil {
		logger.Printf("Saving failed: %v", err)
		fmt.Printf("Download link: %s\n", client.DownloadURL(snap.JobID()))
		os.Exit(1)
	}

	// Print summary
	fmt.Println("\n=== Job Summary ===")
	fmt.Printf("Job ID:   %s\n", snap.JobID())
	if snap.Info != nil {
		fmt.Printf("Title:    %s\n", snap.Info.Title)
	}
	fmt.Printf("Format:   %s\n", opts.format)
	fmt.Printf("Saved to: %s\n", path)
	fmt.Printf("Elapsed:  %s\n", time.Since(snap.StartedAt).Round(time.Second))

	if opts.open {
		if err := platform.OpenFileWithDefaultApp(path); err != nil {
			logger.Printf("Failed to open %s: %v", path, err)
		}
	}
}

// runExtraction validates the options, submits the job and blocks until it
// reaches a final state
func runExtraction(ctx context.Context, opts options, resolver *metadata.Resolver,
	controller *extract.Controller, logger *log.Logger) (extract.Snapshot, error) {
	form, err := buildForm(opts)
	if err != nil {
		return extract.Snapshot{}, err
	}

	// URL and range syntax first, so bad input never reaches the service
	if err := validate.Validate(form, nil); err != nil {
		return extract.Snapshot{}, err
	}

	// metadata only sharpens validation; a failed lookup does not block the job
	info, err := resolver.Resolve(ctx, form.URL)
	switch {
	case ctx.Err() != nil:
		return extract.Snapshot{}, ctx.Err()
	case err != nil:
		logger.Printf("Video information unavailable, submitting anyway: %v", err)
		info = nil
	default:
		logger.Printf("Video: %s (%s)", info.Title, model.FormatDuration(info.Duration))
		if err := validate.Validate(form, info); err != nil {
			return extract.Snapshot{}, err
		}
	}

	controller.SetVideoInfo(info)
	controller.SetUpdateCallback(func(s extract.Snapshot) {
		if line := progressLine(s, time.Now()); line != "" {
			logger.Println(line)
		}
	})

	// the create call is not interrupted so that a job the service already
	// accepted gets an id we can cancel
	if err := controller.Submit(context.WithoutCancel(ctx), form.Request()); err != nil {
		return extract.Snapshot{}, err
	}
	if ctx.Err() != nil {
		cancelJob(controller, logger)
	}

	select {
	case <-controller.Done():
	case <-ctx.Done():
		cancelJob(controller, logger)
		<-controller.Done()
	}
	return controller.Snapshot(), nil
}

// cancelJob cancels the active job, if any, with a fresh deadline
func cancelJob(controller extract.Extractor, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	if err := controller.Cancel(ctx); err != nil && !errors.Is(err, extract.ErrNotCancellable) {
		logger.Printf("Cancel failed: %v", err)
	}
}

// buildForm maps flags to the validator input
func buildForm(opts options) (validate.Form, error) {
	format, ok := model.ParseFormat(opts.format)
	if !ok {
		return validate.Form{}, fmt.Errorf("unknown format %q", opts.format)
	}
	return validate.Form{
		URL:         strings.TrimSpace(opts.url),
		StartTime:   strings.TrimSpace(opts.start),
		EndTime:     strings.TrimSpace(opts.end),
		ExtractFull: opts.full,
		Format:      format,
		Filename:    opts.filename,
		Topic:       opts.topic,
		Author:      opts.author,
	}, nil
}

// progressLine renders one status update, or "" for idle
func progressLine(s extract.Snapshot, now time.Time) string {
	switch s.State {
	case model.JobStateIdle:
		return ""
	case model.JobStateSubmitting:
		return "Submitting job..."
	case model.JobStateFailed, model.JobStateCancelled:
		if s.Error != "" {
			return fmt.Sprintf("[%s] %s", s.State, s.Error)
		}
		return fmt.Sprintf("[%s]", s.State)
	}

	parts := []string{fmt.Sprintf("[%s]", s.State)}
	if s.Job != nil && s.Job.Progress != "" {
		parts = append(parts, s.Job.Progress)
	}
	if p := s.Job.PercentValue(); p >= 0 {
		parts = append(parts, fmt.Sprintf("%.0f%%", p))
	}
	if eta, ok := model.EstimateRemaining(s.Job, now.Sub(s.StartedAt)); ok {
		parts = append(parts, "ETA "+model.FormatRemaining(eta))
	}
	return strings.Join(parts, " ")
}

// suggestedName is used when the service does not name the file
func suggestedName(opts options, s extract.Snapshot) string {
	name := opts.filename
	if name == "" && s.Info != nil {
		name = s.Info.Title
	}
	if name == "" {
		name = s.JobID()
	}
	format, ok := model.ParseFormat(opts.format)
	if !ok {
		format = model.DefaultFormat
	}
	return name + "." + string(format)
}

// confirm asks a yes/no question, defaulting to no
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func printHistory(out io.Writer, records []model.HistoryRecord, link func(string) string) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No extractions yet")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%-12s %-4s %s\n  %s\n", rec.Timestamp, rec.Format, rec.GetDisplayTitle(), link(rec.ID))
	}
}

func exportHistory(path string, records []model.HistoryRecord, link func(string) string) error {
	data, err := history.ExportXLSX(records, link)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func listPlaylist(ctx context.Context, out io.Writer, link string) error {
	if !platform.HasPlaylist(link) {
		return fmt.Errorf("no playlist in %s", link)
	}
	playlist, err := platform.NewPlaylistLister().List(ctx, link)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%d videos)\n", playlist.Title, len(playlist.Entries))
	for i, e := range playlist.Entries {
		fmt.Fprintf(out, "%3d. %s\n     %s\n", i+1, e.Title, e.URL)
	}
	return nil
}
