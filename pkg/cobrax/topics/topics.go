// Package topics provides a topic-based help system for Cobra CLI
// applications. Topics are markdown or plain-text files served from an
// fs.FS, typically an embedded one, which keeps CLIs self-documenting
// without shipping docs next to the binary.
package topics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics.
	// Defaults to [".txt", ".md"] if not specified.
	Extensions []string

	// Renderer for formatting topic content (optional).
	// Defaults to PlainRenderer if not specified.
	Renderer Renderer
}

// New creates a TopicManager over the given filesystem subtree
func New(fsys fs.FS, dir string, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	if err := tm.scanTopics(fsys, dir); err != nil {
		return nil, err
	}
	return tm, nil
}

// scanTopics walks the filesystem subtree for topic files
func (tm *TopicManager) scanTopics(fsys fs.FS, dir string) error {
	return fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		supported := false
		for _, validExt := range tm.extensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		tm.topics[name] = &Topic{
			Name:    name,
			Ext:     ext,
			Content: string(content),
		}
		return nil
	})
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")
	topic, exists := tm.topics[name]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Initialize wires the topic help system into the root command
func Initialize(rootCmd *cobra.Command, fsys fs.FS, dir string, opts Options) error {
	tm, err := New(fsys, dir, opts)
	if err != nil {
		return fmt.Errorf("failed to scan topics: %w", err)
	}

	tm.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				names := tm.ListTopics()
				if len(names) == 0 {
					fmt.Println("No help topics available.")
					return
				}
				fmt.Println("Available help topics:")
				for _, name := range names {
					fmt.Printf("  %s\n", name)
				}
				fmt.Printf("\nUse '%s help <topic>' to read about a specific topic.\n", rootCmd.Name())
				return
			}

			if topic, exists := tm.GetTopic(args[0]); exists {
				fmt.Print(tm.renderer.Render(topic.Content, topic.Ext))
				return
			}

			tm.originalHelp(rootCmd, args)
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	return nil
}
