package astroconfig

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func allowAll(string) bool { return true }

func allow(names ...string) DirChecker {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

const nameListConfig = `
import { defineCollection, z, reference } from 'astro:content';

const blog = defineCollection({
  schema: ({ image }) => z.object({
    title: z.string(),
    hero: image().optional(),
    author: reference('authors'),
  }),
});

const authors = defineCollection({
  schema: z.object({
    name: z.string(),
  }),
});

export const collections = { blog, authors };
`

func TestParse_NameListExport(t *testing.T) {
	got := Parse(nameListConfig, allowAll)
	if len(got) != 2 {
		t.Fatalf("expected 2 collections, got %d: %+v", len(got), got)
	}
	if got[0].Name != "blog" || got[1].Name != "authors" {
		t.Fatalf("unexpected names: %q, %q", got[0].Name, got[1].Name)
	}
	if got[0].Schema == "" {
		t.Fatalf("blog should carry a heuristic schema")
	}
	if got[1].Schema != "" {
		t.Fatalf("authors has no helper calls, schema should be empty, got %q", got[1].Schema)
	}
}

func TestParse_NameListSchemaContents(t *testing.T) {
	got := Parse(nameListConfig, allowAll)

	var doc struct {
		Type   string `json:"type"`
		Fields []struct {
			Name                 string `json:"name"`
			Type                 string `json:"type"`
			ReferencedCollection string `json:"referencedCollection"`
			Optional             bool   `json:"optional"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(got[0].Schema), &doc); err != nil {
		t.Fatalf("schema should be valid JSON: %v", err)
	}
	if doc.Type != "zod" {
		t.Fatalf("expected type zod, got %q", doc.Type)
	}
	if len(doc.Fields) != 2 {
		t.Fatalf("expected 2 helper fields, got %d", len(doc.Fields))
	}
	if doc.Fields[0].Name != "hero" || doc.Fields[0].Type != "Image" {
		t.Fatalf("expected hero Image first, got %+v", doc.Fields[0])
	}
	if doc.Fields[1].Name != "author" || doc.Fields[1].ReferencedCollection != "authors" {
		t.Fatalf("expected author reference to authors, got %+v", doc.Fields[1])
	}
	if !doc.Fields[0].Optional {
		t.Fatalf("heuristic fields default to optional")
	}
}

func TestParse_InlineMap(t *testing.T) {
	src := `
import { defineCollection, z } from 'astro:content';

export const collections = {
  docs: defineCollection({
    schema: ({ image }) => z.object({
      cover: image(),
    }),
  }),
  notes: defineCollection({
    schema: z.object({ body: z.string() }),
  }),
};
`
	got := Parse(src, allow("docs", "notes"))
	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"docs", "notes"}, names); diff != "" {
		t.Fatalf("collection names mismatch (-want +got):\n%s", diff)
	}
	if got[0].Schema == "" {
		t.Fatalf("docs should carry a heuristic schema")
	}
}

func TestParse_LegacyCollectionsProperty(t *testing.T) {
	src := `
module.exports = {
  collections: {
    posts: defineCollection({ schema: z.object({ title: z.string() }) }),
  },
};
`
	got := Parse(src, allowAll)
	if len(got) != 1 || got[0].Name != "posts" {
		t.Fatalf("expected posts from legacy block, got %+v", got)
	}
}

func TestParse_SkipsFileBasedCollections(t *testing.T) {
	src := `
import { defineCollection, z } from 'astro:content';
import { file, glob } from 'astro/loaders';

const blog = defineCollection({
  loader: glob({ pattern: '**/*.md', base: './src/content/blog' }),
  schema: z.object({ title: z.string() }),
});

const settings = defineCollection({ loader: file('./src/data/settings.json') });

export const collections = { blog, settings };
`
	got := Parse(src, allowAll)
	if len(got) != 1 || got[0].Name != "blog" {
		t.Fatalf("file-based collection should be excluded, got %+v", got)
	}
}

func TestParse_SkipsMissingDirectories(t *testing.T) {
	got := Parse(nameListConfig, allow("blog"))
	if len(got) != 1 || got[0].Name != "blog" {
		t.Fatalf("collections without a directory should be skipped, got %+v", got)
	}
}

func TestParse_CommentedOutCollectionIgnored(t *testing.T) {
	src := `
const blog = defineCollection({
  schema: ({ image }) => z.object({ hero: image() }),
});
// const drafts = defineCollection({ schema: z.object({}) });

export const collections = {
  blog: defineCollection({
    schema: ({ image }) => z.object({ hero: image() }),
  }),
  // drafts,
};
`
	got := Parse(src, allow("blog", "drafts"))
	if len(got) != 1 || got[0].Name != "blog" {
		t.Fatalf("commented-out collections must be ignored, got %+v", got)
	}
}

func TestParse_UnclosedDefinitionLosesOnlyItsSchema(t *testing.T) {
	// broken's defineCollection( never balances, so its schema cannot be
	// extracted; fine and the collections block itself are unaffected.
	src := `
const broken = defineCollection({
  schema: z.object({ title: z.string(),

const fine = defineCollection({
  schema: ({ image }) => z.object({ hero: image() }),
});

export const collections = { broken, fine };
`
	got := Parse(src, allowAll)
	if len(got) != 2 {
		t.Fatalf("expected both collections, got %+v", got)
	}
	for _, c := range got {
		switch c.Name {
		case "broken":
			if c.Schema != "" {
				t.Fatalf("broken definition should have no schema, got %q", c.Schema)
			}
		case "fine":
			if c.Schema == "" {
				t.Fatalf("sibling collection should keep its schema")
			}
		}
	}
}

func TestParse_NoCollectionsBlock(t *testing.T) {
	if got := Parse(`const nothing = 42;`, allowAll); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestExtractCollectionsBlock_UnclosedBlock(t *testing.T) {
	if _, ok := ExtractCollectionsBlock("export const collections = { blog: defineCollection("); ok {
		t.Fatalf("unclosed block must not match")
	}
}

func TestIsFileBasedCollection(t *testing.T) {
	src := `const settings = defineCollection({ loader: file('./data/settings.json') });`
	if !IsFileBasedCollection(src, "settings") {
		t.Fatalf("expected settings to be file-based")
	}
	if IsFileBasedCollection(src, "blog") {
		t.Fatalf("blog is not declared at all")
	}
}
