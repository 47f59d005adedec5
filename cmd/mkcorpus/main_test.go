package main

import (
	"bufio"
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writeDocument(w, rand.New(rand.NewPCG(7, 0)), "SYN_0000.000001", 2)
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<DOC id="SYN_0000.000001" type="`))
	assert.Equal(t, 2, strings.Count(out, "<P>\n"))
	assert.Equal(t, 2, strings.Count(out, "</P>\n"))
	assert.True(t, strings.HasSuffix(out, "</TEXT>\n</DOC>\n"))

	// markup characters in generated text are always escaped
	body := out[strings.Index(out, "<TEXT>"):]
	body = strings.NewReplacer("<TEXT>", "", "</TEXT>", "", "<P>", "", "</P>", "", "</DOC>", "").Replace(body)
	assert.NotContains(t, body, "<")
	assert.NotContains(t, strings.ReplaceAll(body, "&amp;", ""), "& ")
}

func TestSentenceDeterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(42, 0))
	b := rand.New(rand.NewPCG(42, 0))
	for range 10 {
		assert.Equal(t, sentence(a), sentence(b))
	}
}
