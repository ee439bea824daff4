package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/castlight-labs/guestscope-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads generation prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptInsightsSystem: `You are a research analyst preparing a podcast host for an upcoming guest. From the provided source snippets, extract the guest's most notable themes: defining achievements, recurring topics, controversies, and distinctive viewpoints. Ground every theme in the snippets and cite the source locator for each. Respond with a single JSON object: {"themes": [{"title": string, "summary": string, "sources": [string]}]}.`,

	driven.PromptInsightsUser: `Guest: %s

Source snippets (JSON array of {source, title, text}):
%s`,

	driven.PromptPlanSystem: `You are a podcast producer drafting a conversation plan. Using the guest's notable themes and the source snippets, produce an ordered interview plan: an opening, topic segments with suggested questions, and a closing. Keep questions specific to the provided material. Respond with a single JSON object: {"opening": string, "segments": [{"topic": string, "questions": [string]}], "closing": string}.`,

	driven.PromptPlanUser: `Guest: %s

Notable themes (JSON):
%s

Source snippets (JSON array of {source, title, text}):
%s`,

	driven.PromptCommentsSystem: `You are an audience analyst. The input is a JSON array of YouTube comments about a podcast guest, each with a like count and text, most-liked first. Identify overall sentiment, recurring praise, recurring criticism, and frequently asked questions. Respond with a single JSON object: {"sentiment": string, "praise": [string], "criticism": [string], "questions": [string]}.`,

	driven.PromptCommentsUser: `Comments (JSON array of {likes, text}):
%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.guestscope/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".guestscope", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Guestscope Prompts

This directory contains customisable prompts used by guestscope's
generation commands.

## Files

- ` + "`insights_system.txt` / `insights_user.txt`" + ` - Notable-themes extraction
- ` + "`plan_system.txt` / `plan_user.txt`" + ` - Conversation-plan generation
- ` + "`comments_system.txt` / `comments_user.txt`" + ` - Audience-sentiment analysis

## Customisation

Edit any file to customise generation behaviour. Changes take effect on
the next command.

## Format Placeholders

The user prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (the subject name, snippet JSON, or prior artifacts)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
