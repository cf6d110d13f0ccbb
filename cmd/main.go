package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fablecast/internal/ai"
	"fablecast/internal/ai/openai"
	"fablecast/internal/audio"
	"fablecast/internal/audiobook"
	"fablecast/internal/cli/scheme/colours"
	"fablecast/internal/config"
	"fablecast/internal/domain/book"
	"fablecast/internal/parser"
	"fablecast/internal/registry"
	"fablecast/internal/tts"
	"fablecast/internal/voices"
)

func main() {
	config.SetDefaults()

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
		fmt.Println("\n" + colours.Warning.Sprint("Interrupted, finishing up..."))
	}()

	rootCmd := &cobra.Command{
		Use:   "fablecast",
		Short: "🎭 Full-cast audiobooks from plain-text novels",
		Long: `Fablecast parses a plain-text novel into narration and dialogue,
resolves who speaks each line, assigns every character a voice, and
synthesizes chapter audio files with a text-to-speech engine.`,
	}

	parseCmd := &cobra.Command{
		Use:   "parse [book.txt]",
		Short: "📖 Parse a book and show its structure",
		Long:  "Parse a book into chapters and segments without generating audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0])
		},
	}

	charactersCmd := &cobra.Command{
		Use:   "characters [book.txt]",
		Short: "🎭 Discover the characters in a book",
		Long:  "Parse a book and list every speaker found, optionally resolving identities with AI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharacters(args[0])
		},
	}

	generateCmd := &cobra.Command{
		Use:   "generate [book.txt]",
		Short: "🎧 Generate a full audiobook",
		Long:  "Parse a book and synthesize chapter audio files with assigned voices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()
			applyGenerateFlags(&settings, cmd.Flags())
			return runGenerate(ctx, args[0], settings)
		},
	}

	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🎤 List available voices",
		Long:  "List the voices offered by the configured TTS engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()
			applyVoicesFlags(&settings, cmd.Flags())
			return runVoices(ctx, settings)
		},
	}

	generateCmd.Flags().StringP("output", "o", config.DefaultOutputDir, "Output directory for audio files")
	generateCmd.Flags().String("engine", config.DefaultEngine, "TTS engine (auto, google, espeak, mock)")
	generateCmd.Flags().Bool("no-grouping", false, "Disable segment grouping")
	generateCmd.Flags().Bool("no-combine", false, "Keep individual segment files per chapter")
	generateCmd.Flags().Bool("no-announce", false, "Skip chapter title announcements")
	generateCmd.Flags().Bool("no-transcripts", false, "Skip transcript files")
	generateCmd.Flags().Float64("crossfade", 0, "Crossfade duration in seconds between segments")
	charactersCmd.Flags().String("registry", "", "Path to persist the character registry between runs")
	voicesCmd.Flags().String("engine", config.DefaultEngine, "TTS engine (auto, google, espeak, mock)")

	viper.BindPFlag("output.dir", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("tts.engine", generateCmd.Flags().Lookup("engine"))
	viper.BindPFlag("output.crossfade_seconds", generateCmd.Flags().Lookup("crossfade"))
	viper.BindPFlag("parse.registry_path", charactersCmd.Flags().Lookup("registry"))

	rootCmd.AddCommand(parseCmd, charactersCmd, generateCmd, voicesCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	viper.SetConfigName("fablecast")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.fablecast")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("fablecast")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

func runParse(bookPath string) error {
	b, err := parseBook(bookPath, nil)
	if err != nil {
		return err
	}

	fmt.Println()
	colours.Title.Printf("📖 %s\n", b.Title)
	if b.Author != "" {
		colours.Author.Printf("✍️  by %s\n", b.Author)
	}
	fmt.Println()

	totalSegments := 0
	for _, ch := range b.Chapters {
		dialogue := 0
		for _, seg := range ch.Segments {
			if seg.IsDialogue() {
				dialogue++
			}
		}
		totalSegments += len(ch.Segments)
		colours.Info.Printf("  %s", ch.Title)
		fmt.Printf(": %d segments (%d dialogue)\n", len(ch.Segments), dialogue)
	}

	fmt.Println()
	colours.Success.Printf("✨ %d chapters, %d segments\n", len(b.Chapters), totalSegments)
	return nil
}

func runCharacters(bookPath string) error {
	settings := config.Load()

	reg := registry.New(newProvider(settings))
	if settings.RegistryPath != "" {
		if err := loadRegistry(reg, settings.RegistryPath); err != nil {
			return err
		}
	}

	b, err := parseBook(bookPath, reg)
	if err != nil {
		return err
	}

	characters := voices.DiscoverCharacters(b)
	fmt.Println()
	colours.Title.Printf("🎭 Discovered %d characters\n", len(characters))
	fmt.Println()
	for _, name := range characters {
		fmt.Printf("  • %s\n", name)
	}

	if settings.RegistryPath != "" {
		if err := saveRegistry(reg, settings.RegistryPath); err != nil {
			return err
		}
		colours.Info.Printf("\n💾 Registry saved to %s\n", settings.RegistryPath)
	}
	return nil
}

func runGenerate(ctx context.Context, bookPath string, settings config.Settings) error {
	reg := registry.New(newProvider(settings))
	if settings.RegistryPath != "" {
		if err := loadRegistry(reg, settings.RegistryPath); err != nil {
			return err
		}
	}

	b, err := parseBook(bookPath, reg)
	if err != nil {
		return err
	}

	colours.Title.Printf("📖 %s", b.Title)
	fmt.Printf(" (%d chapters)\n", len(b.Chapters))

	engine, err := tts.NewEngine(tts.Config{
		Type:   settings.Engine,
		Voice:  settings.NarratorVoice,
		Speed:  settings.Speed,
		Volume: settings.Volume,
	})
	if err != nil {
		return fmt.Errorf("create TTS engine: %w", err)
	}
	defer engine.Close()

	available, err := engine.AvailableVoices(ctx)
	if err != nil {
		return fmt.Errorf("list voices: %w", err)
	}

	assigner := voices.NewAssigner(narratorVoice(available, settings.NarratorVoice))
	assigner.SetAvailableVoices(characterPool(available))

	generator := audiobook.NewGenerator(engine, assigner, audiobook.Options{
		UseGrouping:      settings.UseGrouping,
		CombineFiles:     settings.CombineFiles,
		AnnounceChapters: settings.AnnounceChapters,
		WriteTranscripts: settings.WriteTranscripts,
	})
	if settings.Crossfade > 0 {
		generator.SetCombineStrategy(audio.CrossfadeStrategy{Duration: settings.Crossfade})
	}

	colours.Info.Printf("🎧 Generating audiobook to %s\n\n", settings.OutputDir)

	err = generator.GenerateBook(ctx, b, settings.OutputDir, func(done, total int) {
		colours.Success.Printf("  Chapter %d/%d complete\n", done, total)
	})
	if err != nil {
		return err
	}

	colours.Success.Println("\n✅ Audiobook generation complete!")
	return nil
}

func runVoices(ctx context.Context, settings config.Settings) error {
	engine, err := tts.NewEngine(tts.Config{
		Type:   settings.Engine,
		Voice:  settings.NarratorVoice,
		Speed:  settings.Speed,
		Volume: settings.Volume,
	})
	if err != nil {
		return fmt.Errorf("create TTS engine: %w", err)
	}
	defer engine.Close()

	available, err := engine.AvailableVoices(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(available))
	for name := range available {
		names = append(names, name)
	}
	sort.Strings(names)

	colours.Title.Printf("🎤 %d voices available\n", len(names))
	for _, name := range names {
		fmt.Printf("  • %s (%s)\n", name, available[name])
	}
	return nil
}

// applyGenerateFlags folds the generate command's negative flags into the
// loaded settings. Only flags the user actually set override the config.
func applyGenerateFlags(settings *config.Settings, flags *pflag.FlagSet) {
	if flags.Changed("no-grouping") {
		v, _ := flags.GetBool("no-grouping")
		settings.UseGrouping = !v
	}
	if flags.Changed("no-combine") {
		v, _ := flags.GetBool("no-combine")
		settings.CombineFiles = !v
	}
	if flags.Changed("no-announce") {
		v, _ := flags.GetBool("no-announce")
		settings.AnnounceChapters = !v
	}
	if flags.Changed("no-transcripts") {
		v, _ := flags.GetBool("no-transcripts")
		settings.WriteTranscripts = !v
	}
}

// applyVoicesFlags reads the voices command's engine flag directly; binding
// it to viper would share state with the generate command's flag.
func applyVoicesFlags(settings *config.Settings, flags *pflag.FlagSet) {
	if flags.Changed("engine") {
		settings.Engine, _ = flags.GetString("engine")
	}
}

func parseBook(path string, reg *registry.Registry) (book.Book, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return book.Book{}, fmt.Errorf("read book: %w", err)
	}

	var resolver parser.SpeakerResolver
	if reg != nil {
		resolver = reg
	}
	return parser.New(resolver).Parse(string(content)), nil
}

// newProvider builds the AI collaborator when an API key is configured;
// without one the registry runs on heuristics alone.
func newProvider(settings config.Settings) ai.Provider {
	if settings.OpenAIKey == "" {
		return nil
	}

	client, err := openai.NewClient(openai.Config{
		APIKey:     settings.OpenAIKey,
		BaseURL:    settings.OpenAIBaseURL,
		Model:      settings.OpenAIModel,
		Timeout:    settings.AITimeout,
		MaxRetries: settings.AIMaxRetries,
	})
	if err != nil {
		logrus.WithError(err).Warn("AI provider disabled")
		return nil
	}
	return client
}

func loadRegistry(reg *registry.Registry, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}

	var characters map[string]registry.Character
	if err := json.Unmarshal(data, &characters); err != nil {
		return fmt.Errorf("parse registry: %w", err)
	}
	return reg.FromMap(characters)
}

func saveRegistry(reg *registry.Registry, path string) error {
	data, err := json.MarshalIndent(reg.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// narratorVoice picks the engine's narrator voice when it offers one,
// otherwise the configured name is passed through to the engine as-is.
func narratorVoice(available map[string]string, configured string) string {
	if id, ok := available[configured]; ok {
		return id
	}
	return configured
}

// characterPool returns every non-narrator voice, in stable order.
func characterPool(available map[string]string) []string {
	names := make([]string, 0, len(available))
	for name := range available {
		if name != "narrator" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	pool := make([]string, 0, len(names))
	for _, name := range names {
		pool = append(pool, available[name])
	}
	return pool
}
