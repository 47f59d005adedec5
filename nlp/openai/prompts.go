package openai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/corpora/core"
)

// taggingResponseSchema is the JSON schema the model must follow.
const taggingResponseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "tokens": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "i": {"type": "integer", "minimum": 0},
          "lemma": {"type": "string"},
          "pos": {"type": "string"},
          "ner": {"type": "string"}
        },
        "required": ["i", "lemma", "pos", "ner"],
        "additionalProperties": false
      }
    }
  },
  "required": ["tokens"],
  "additionalProperties": false
}`

const taggingPromptTemplate = `Tag every token of the given numbered token list and return the tags as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Return exactly one entry per input token, using the token's number as "i".
- "lemma" is the dictionary form of the token. Keep the original casing for proper nouns, lowercase otherwise.
- "pos" must be a Penn Treebank tag: %s.
- "ner" must be one of: %s. Use "O" for tokens that are not part of a named entity.
- Blank lines separate sentences. Do not merge or split tokens.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input:
0 Chirac
1 visited
2 Paris
3 .
Output:
{
  "tokens": [
    {"i":0,"lemma":"Chirac","pos":"NNP","ner":"PERSON"},
    {"i":1,"lemma":"visit","pos":"VBD","ner":"O"},
    {"i":2,"lemma":"Paris","pos":"NNP","ner":"LOCATION"},
    {"i":3,"lemma":".","pos":".","ner":"O"}
  ]
}`

// pennTags is the Penn Treebank part-of-speech tag set.
var pennTags = []string{
	"CC", "CD", "DT", "EX", "FW", "IN", "JJ", "JJR", "JJS", "LS", "MD", "NN", "NNS", "NNP", "NNPS",
	"PDT", "POS", "PRP", "PRP$", "RB", "RBR", "RBS", "RP", "SYM", "TO", "UH", "VB", "VBD", "VBG",
	"VBN", "VBP", "VBZ", "WDT", "WP", "WP$", "WRB", ".", ",", ":", "``", "''", "-LRB-", "-RRB-", "#", "$",
}

// nerLabels are the entity classes the model may assign.
var nerLabels = []string{
	"PERSON", "LOCATION", "ORGANIZATION", "MISC", "DATE", "TIME", "MONEY", "PERCENT", "NUMBER", "O",
}

// buildSystemPrompt creates the system prompt with the tag sets embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(taggingPromptTemplate,
		taggingResponseSchema,
		strings.Join(pennTags, " "),
		strings.Join(nerLabels, ", "))
}

// buildTokenList numbers the tokens of sentences consecutively from 0, one
// per line, with a blank line between sentences.
func buildTokenList(sentences []core.Sentence) string {
	var sb strings.Builder
	i := 0
	for si, s := range sentences {
		if si > 0 {
			sb.WriteByte('\n')
		}
		for _, tok := range s.Tokens {
			sb.WriteString(strconv.Itoa(i))
			sb.WriteByte(' ')
			sb.WriteString(tok.Word)
			sb.WriteByte('\n')
			i++
		}
	}
	return sb.String()
}
