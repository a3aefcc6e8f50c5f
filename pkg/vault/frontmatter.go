package vault

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	wikiEmbedPattern     = regexp.MustCompile(`!\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`)
	markdownEmbedPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)`)
)

// parseFrontMatter extracts the YAML front-matter mapping from note content.
// Front matter must be delimited by "---" on its own line at the start of the
// file. Missing or malformed front matter produces an empty map, never an
// error: a note without metadata is still a valid record. The returned offset
// is where the note body starts.
func parseFrontMatter(content []byte) (map[string]any, int) {
	block, bodyOffset, ok := frontMatterBlock(content)
	if !ok {
		return map[string]any{}, 0
	}
	fm := map[string]any{}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return map[string]any{}, bodyOffset
	}
	if fm == nil {
		fm = map[string]any{}
	}
	return fm, bodyOffset
}

// frontMatterBlock locates the bare YAML block between the opening and
// closing "---" lines. Offsets are tracked on the raw byte slice, so LF and
// CRLF notes and a closing delimiter without a trailing newline all account
// correctly. ok is false when content carries no complete front matter.
func frontMatterBlock(content []byte) (block []byte, bodyOffset int, ok bool) {
	line, offset := nextLine(content, 0)
	if offset == 0 || strings.TrimSpace(string(line)) != "---" {
		return nil, 0, false
	}
	blockStart := offset
	for offset < len(content) {
		lineStart := offset
		line, offset = nextLine(content, offset)
		if strings.TrimSpace(string(line)) == "---" {
			return content[blockStart:lineStart], offset, true
		}
	}
	return nil, 0, false
}

// nextLine returns the line starting at off without its terminator, and the
// offset of the first byte after the terminator. The last line of the slice
// may have no terminator at all.
func nextLine(content []byte, off int) ([]byte, int) {
	idx := bytes.IndexByte(content[off:], '\n')
	if idx < 0 {
		return content[off:], len(content)
	}
	return content[off : off+idx], off + idx + 1
}

// extractEmbeds returns the targets of embedded files in document order,
// covering both wiki embeds (![[file.png]]) and markdown images
// (![alt](file.png)).
func extractEmbeds(body []byte) []string {
	var embeds []string
	for _, m := range wikiEmbedPattern.FindAllSubmatch(body, -1) {
		embeds = append(embeds, string(m[1]))
	}
	for _, m := range markdownEmbedPattern.FindAllSubmatch(body, -1) {
		embeds = append(embeds, string(m[1]))
	}
	return embeds
}

// rewriteFrontMatter applies the mutated mapping back onto the original note
// content. Existing keys keep their position and any comments around them;
// new keys are appended to the end of the front-matter block. Returns the
// full new note content.
func rewriteFrontMatter(content []byte, mutated map[string]any) ([]byte, error) {
	original, _ := parseFrontMatter(content)

	body := content
	var block []byte
	if b, bodyOffset, ok := frontMatterBlock(content); ok {
		block = b
		body = content[bodyOffset:]
	}

	var doc yaml.Node
	if len(block) > 0 {
		if err := yaml.Unmarshal(block, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse front matter: %w", err)
		}
	}
	mapping := documentMapping(&doc)

	// Apply changed and added keys.
	for key, value := range mutated {
		if orig, ok := original[key]; ok && yamlEqual(orig, value) {
			continue
		}
		if err := setMappingKey(mapping, key, value); err != nil {
			return nil, err
		}
	}
	// Apply removed keys.
	for key := range original {
		if _, ok := mutated[key]; !ok {
			removeMappingKey(mapping, key)
		}
	}

	encoded, err := yaml.Marshal(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("---\n")
	out.Write(encoded)
	out.WriteString("---\n")
	out.Write(body)
	return out.Bytes(), nil
}

// documentMapping returns the mapping node of the parsed front matter,
// creating an empty one when the block was empty.
func documentMapping(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
		return doc.Content[0]
	}
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func setMappingKey(mapping *yaml.Node, key string, value any) error {
	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			// Keep the key node (and its comments), replace only the value.
			mapping.Content[i+1] = valueNode
			return nil
		}
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	mapping.Content = append(mapping.Content, keyNode, valueNode)
	return nil
}

func removeMappingKey(mapping *yaml.Node, key string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return
		}
	}
}

// yamlEqual compares two front-matter values through their YAML encoding,
// which sidesteps type differences between parse-time and mutation-time
// representations (e.g. time.Time vs. "2024-01-02").
func yamlEqual(a, b any) bool {
	ab, errA := yaml.Marshal(a)
	bb, errB := yaml.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ab, bb)
}
