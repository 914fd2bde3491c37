// Copyright 2025 The marketing-sm Authors
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", "json", &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("path", "state.json").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var event map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "shown", event["message"])
	assert.Equal(t, "state.json", event["path"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "console", &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Msg("state loaded")
	assert.Contains(t, buf.String(), "state loaded")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("chatty", "json", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
