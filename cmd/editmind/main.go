// Copyright 2025 Ilias Haddad
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	editmind "github.com/IliasHad/edit-mind-sub003"
	"github.com/IliasHad/edit-mind-sub003/ai"
	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/IliasHad/edit-mind-sub003/indexing"
	"github.com/IliasHad/edit-mind-sub003/jobs"
	"github.com/IliasHad/edit-mind-sub003/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "editmind",
		Usage: "Multi-modal scene indexing and retrieval for video libraries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Index scenes from a JSON file into the vector store",
				Action: indexCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "scenes",
						Aliases:  []string{"s"},
						Usage:    "Path to a JSON file containing an array of scenes",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "integration",
						Aliases:  []string{"i"},
						Usage:    "Integration identifier for the ingestion job",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of scenes to embed in each batch",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Search indexed scenes",
				Action: searchCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "text",
						Usage: "Free-text query",
					},
					&cli.StringSliceFlag{
						Name:  "face",
						Usage: "Face label to search for (repeatable)",
					},
					&cli.StringFlag{
						Name:  "transcript",
						Usage: "Spoken-dialogue query",
					},
					&cli.StringFlag{
						Name:  "video",
						Usage: "Restrict results to one video ID",
					},
					&cli.IntFlag{
						Name:  "max-hits",
						Usage: "Maximum number of scenes to return",
						Value: 10,
					},
				),
			},
			{
				Name:      "chat",
				Usage:     "Send one chat prompt through the intent router",
				ArgsUsage: "<prompt>",
				Action:    chatCommand,
				Flags: append(commonFlags(),
					&cli.StringSliceFlag{
						Name:  "video",
						Usage: "Video ID in scope for the conversation (repeatable)",
					},
				),
			},
			{
				Name:   "job",
				Usage:  "Show the latest ingestion job for an integration",
				Action: jobCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "integration",
						Aliases:  []string{"i"},
						Usage:    "Integration identifier to look up",
						Required: true,
					},
				),
			},
			{
				Name:   "retry",
				Usage:  "Re-enqueue the latest failed job for an integration",
				Action: retryCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "integration",
						Aliases:  []string{"i"},
						Usage:    "Integration identifier to retry",
						Required: true,
					},
				),
			},
			{
				Name:   "status",
				Usage:  "Sample service health once and print it",
				Action: statusCommand,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags returns the flags shared by every subcommand that opens the
// database and talks to model backends.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Model service host URL for embeddings and chat",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "text-model",
			Usage: "Text embedding model name",
		},
		&cli.StringFlag{
			Name:  "visual-model",
			Usage: "Visual embedding model name",
		},
		&cli.StringFlag{
			Name:  "audio-model",
			Usage: "Audio embedding model name",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name for classification and narration",
		},
	}
}

// openSystem builds a System from the command's flags.
func openSystem(c *cli.Context) (*editmind.System, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	opts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
	}
	if m := c.String("text-model"); m != "" {
		opts = append(opts, ai.WithEmbeddingModel(core.ModalityText, m))
	}
	if m := c.String("visual-model"); m != "" {
		opts = append(opts, ai.WithEmbeddingModel(core.ModalityVisual, m))
	}
	if m := c.String("audio-model"); m != "" {
		opts = append(opts, ai.WithEmbeddingModel(core.ModalityAudio, m))
	}
	if m := c.String("chat-model"); m != "" {
		opts = append(opts, ai.WithChatModel(m))
	}

	aiConfig := ai.NewConfig(opts...)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	system, err := editmind.NewSystem(dbPath, editmind.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open system: %w", err)
	}
	return system, nil
}

// sceneInput is the JSON shape accepted by the index command.
type sceneInput struct {
	ID            string   `json:"id"`
	VideoID       string   `json:"videoId"`
	StartTime     float64  `json:"startTime"`
	EndTime       float64  `json:"endTime"`
	Text          string   `json:"text"`
	Faces         []string `json:"faces"`
	Objects       []string `json:"objects"`
	Emotions      []string `json:"emotions"`
	ShotType      string   `json:"shotType"`
	Camera        string   `json:"camera"`
	Location      string   `json:"location"`
	Transcription string   `json:"transcription"`
}

func loadScenes(path string) ([]*core.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenes file: %w", err)
	}

	var inputs []sceneInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to parse scenes file: %w", err)
	}

	scenes := make([]*core.Scene, 0, len(inputs))
	for _, in := range inputs {
		scenes = append(scenes, &core.Scene{
			ID:            in.ID,
			VideoID:       in.VideoID,
			StartTime:     in.StartTime,
			EndTime:       in.EndTime,
			Text:          in.Text,
			Faces:         in.Faces,
			Objects:       in.Objects,
			Emotions:      in.Emotions,
			ShotType:      in.ShotType,
			Camera:        in.Camera,
			Location:      in.Location,
			Transcription: in.Transcription,
		})
	}
	return scenes, nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	scenes, err := loadScenes(c.String("scenes"))
	if err != nil {
		return err
	}
	if len(scenes) == 0 {
		return fmt.Errorf("scenes file contains no scenes")
	}

	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	pipeline, err := system.NewIndexingPipeline(
		indexing.WithBatchSize(c.Int("batch-size")),
		indexing.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Scenes: %d\n", len(scenes))
	fmt.Fprintln(os.Stderr)

	job, err := pipeline.Index(ctx, c.String("integration"), scenes)
	if err != nil {
		if job != nil {
			fmt.Fprintf(os.Stderr, "Job %s failed\n", job.ID)
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("Job %s %s\n", job.ID, job.State)
	if failed := job.Data["failedScenes"]; failed != "" && failed != "0" {
		fmt.Printf("Scenes with embedding failures: %s\n", failed)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := search.SceneQuery{
		Faces:      c.StringSlice("face"),
		Text:       c.String("text"),
		Transcript: c.String("transcript"),
		VideoID:    c.String("video"),
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	searcher, err := system.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	scenes, err := searcher.FindScenes(ctx, query, c.Int("max-hits"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(scenes) == 0 {
		fmt.Println("No matching scenes.")
		return nil
	}

	for _, scene := range scenes {
		fmt.Printf("%s  %s  %.1fs-%.1fs\n", scene.ID, scene.VideoID, scene.StartTime, scene.EndTime)
		if doc := scene.Document(); doc != "" {
			fmt.Printf("  %s\n", strings.ReplaceAll(doc, "\n", "\n  "))
		}
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if prompt == "" {
		return fmt.Errorf("a prompt argument is required")
	}

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	router, err := system.NewChatRouter()
	if err != nil {
		return fmt.Errorf("failed to create chat router: %w", err)
	}

	response, err := router.Chat(ctx, prompt, c.StringSlice("video"))
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Println(response.AssistantText)
	if len(response.SceneIDs) > 0 {
		fmt.Printf("\nScenes: %s\n", strings.Join(response.SceneIDs, ", "))
	}
	return nil
}

func jobCommand(c *cli.Context) error {
	ctx := context.Background()

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	tracker, err := system.NewJobTracker()
	if err != nil {
		return fmt.Errorf("failed to create job tracker: %w", err)
	}

	job, err := tracker.FindLatestJob(ctx, c.String("integration"))
	if err != nil {
		return fmt.Errorf("job lookup failed: %w", err)
	}
	if job == nil {
		fmt.Println("No job found.")
		return nil
	}

	printJob(job)
	return nil
}

func retryCommand(c *cli.Context) error {
	ctx := context.Background()

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	tracker, err := system.NewJobTracker()
	if err != nil {
		return fmt.Errorf("failed to create job tracker: %w", err)
	}

	job, err := tracker.Retry(ctx, c.String("integration"))
	if err != nil {
		if errors.Is(err, jobs.ErrNoFailedJob) {
			fmt.Println("No failed job to retry.")
			return nil
		}
		return fmt.Errorf("retry failed: %w", err)
	}

	fmt.Printf("Re-enqueued as job %s\n", job.ID)
	printJob(job)
	return nil
}

func statusCommand(c *cli.Context) error {
	ctx := context.Background()

	system, err := openSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	broadcaster, err := system.NewStatusBroadcaster()
	if err != nil {
		return fmt.Errorf("failed to create status broadcaster: %w", err)
	}

	sample := broadcaster.Sample(ctx)
	fmt.Printf("Background jobs: %s\n", healthWord(sample.BackgroundJobsService))
	fmt.Printf("ML service:      %s\n", healthWord(sample.MLService))
	fmt.Printf("Sampled at:      %s\n", sample.Timestamp.Format(time.RFC3339))
	return nil
}

func printJob(job *core.Job) {
	fmt.Printf("ID:          %s\n", job.ID)
	fmt.Printf("Integration: %s\n", job.IntegrationID)
	fmt.Printf("State:       %s\n", job.State)
	fmt.Printf("Created:     %s\n", job.CreatedAt.Format(time.RFC3339))
	if len(job.Data) > 0 {
		fmt.Println("Data:")
		for key, value := range job.Data {
			fmt.Printf("  %s: %s\n", key, value)
		}
	}
}

func healthWord(ok bool) string {
	if ok {
		return "up"
	}
	return "degraded"
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
