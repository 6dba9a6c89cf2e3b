package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/zczcm85/readword/internal/wordlist"
)

// lookupWorkers bounds concurrent backend calls so the free endpoints
// are not hammered.
const lookupWorkers = 4

// Warning records a word whose translation lookup failed. The word is
// still narrated, just without a translation.
type Warning struct {
	Word string
	Err  error
}

// Resolver fills in missing translations for word list entries.
// Supplied translations are never overwritten, and each distinct word
// is looked up at most once.
type Resolver struct {
	backend  Backend
	fallback Backend
	config   *Config
	store    *Store
}

// NewResolver creates a resolver using the given backend.
func NewResolver(backend Backend, config *Config) *Resolver {
	if config == nil {
		config = DefaultConfig()
	}
	return &Resolver{
		backend: backend,
		config:  config,
	}
}

// SetFallbackBackend attaches a second backend tried when the primary
// fails for a word.
func (r *Resolver) SetFallbackBackend(backend Backend) {
	r.fallback = backend
}

// SetStore attaches a persistent store. Lookups read through it and
// successful results are written back.
func (r *Resolver) SetStore(store *Store) {
	r.store = store
}

// Resolve returns a copy of entries with missing translations filled
// in. Lookup failures become warnings, ordered by where the word first
// appears in the input, and leave the translation empty.
func (r *Resolver) Resolve(ctx context.Context, entries []wordlist.Entry) ([]wordlist.Entry, []Warning) {
	// Translations supplied anywhere in the input serve every position
	// of that word. Later occurrences win.
	known := make(map[string]string)
	firstSeen := make(map[string]int)
	for i, entry := range entries {
		if _, ok := firstSeen[entry.Word]; !ok {
			firstSeen[entry.Word] = i
		}
		if entry.Translation != "" {
			known[entry.Word] = entry.Translation
		}
	}

	var pending []string
	for _, entry := range entries {
		if entry.Word == "" {
			continue
		}
		if _, ok := known[entry.Word]; ok {
			continue
		}
		known[entry.Word] = "" // mark queued so each word appears once
		pending = append(pending, entry.Word)
	}

	// Read through the store before going to the backend.
	if r.store != nil {
		remaining := pending[:0]
		for _, word := range pending {
			if cached, ok := r.storeGet(word); ok {
				known[word] = cached
				continue
			}
			remaining = append(remaining, word)
		}
		pending = remaining
	}

	var warnings []Warning
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, lookupWorkers)

	for _, word := range pending {
		wg.Add(1)
		go func(word string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			translation, locale, err := r.lookup(ctx, word)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				warnings = append(warnings, Warning{Word: word, Err: err})
				return
			}
			known[word] = translation
			if r.store != nil {
				_ = r.store.Put(word, locale, translation) // Ignore store errors
			}
		}(word)
	}
	wg.Wait()

	sort.Slice(warnings, func(i, j int) bool {
		return firstSeen[warnings[i].Word] < firstSeen[warnings[j].Word]
	})

	resolved := make([]wordlist.Entry, len(entries))
	copy(resolved, entries)
	for i := range resolved {
		if resolved[i].Translation == "" {
			resolved[i].Translation = known[resolved[i].Word]
		}
	}

	return resolved, warnings
}

// storeGet checks the target locale first, then the fallback.
func (r *Resolver) storeGet(word string) (string, bool) {
	if cached, ok := r.store.Get(word, r.config.Target); ok {
		return cached, true
	}
	if r.config.Fallback != "" && r.config.Fallback != r.config.Target {
		if cached, ok := r.store.Get(word, r.config.Fallback); ok {
			return cached, true
		}
	}
	return "", false
}

// lookup translates one word, trying the fallback backend when the
// primary fails entirely. It returns the locale that produced the
// translation.
func (r *Resolver) lookup(ctx context.Context, word string) (string, string, error) {
	translation, locale, err := r.lookupVia(ctx, r.backend, word)
	if err == nil {
		return translation, locale, nil
	}

	if r.fallback != nil {
		if translation, locale, fbErr := r.lookupVia(ctx, r.fallback, word); fbErr == nil {
			return translation, locale, nil
		}
	}

	return "", "", err
}

// lookupVia asks one backend for the target locale, then for the
// fallback locale when the target yields nothing.
func (r *Resolver) lookupVia(ctx context.Context, backend Backend, word string) (string, string, error) {
	translation, err := backend.Translate(ctx, word, r.config.Source, r.config.Target)
	if err == nil && translation != "" {
		return translation, r.config.Target, nil
	}

	if r.config.Fallback != "" && r.config.Fallback != r.config.Target {
		fallback, fbErr := backend.Translate(ctx, word, r.config.Source, r.config.Fallback)
		if fbErr == nil && fallback != "" {
			return fallback, r.config.Fallback, nil
		}
	}

	if err == nil {
		err = fmt.Errorf("no translation returned")
	}
	return "", "", err
}
