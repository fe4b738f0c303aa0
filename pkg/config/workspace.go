// File: cpp-workspace-gen/pkg/config/workspace.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/spf13/afero"

	"cpp-workspace-gen/pkg/types"
)

// Indent is the indentation used for every generated document.
const Indent = "    "

// EncodeJSON renders v with Indent and without HTML escaping. Non-ASCII
// characters are written as \uXXXX escapes so the output is plain ASCII.
// The result ends in a newline.
func EncodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return escapeNonASCII(buf.Bytes()), nil
}

// escapeNonASCII rewrites every rune above 0x7f in encoded JSON. Such runes
// only occur inside strings, where an escape is equivalent.
func escapeNonASCII(data []byte) []byte {
	if !bytes.ContainsFunc(data, func(r rune) bool { return r >= utf8.RuneSelf }) {
		return data
	}

	out := make([]byte, 0, len(data)+len(data)/4)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		switch {
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			out = fmt.Appendf(out, "\\u%04x\\u%04x", r1, r2)
		default:
			out = fmt.Appendf(out, "\\u%04x", r)
		}
	}
	return out
}

// EncodeWorkspace renders the workspace document.
func EncodeWorkspace(ws *types.Workspace) ([]byte, error) {
	data, err := EncodeJSON(ws)
	if err != nil {
		return nil, eris.Wrap(err, "failed to encode workspace")
	}
	return data, nil
}

// WriteWorkspace encodes the whole document first and then writes it in one
// go, either to stdout (path "-") or to a file on fs.
func WriteWorkspace(fs afero.Fs, stdout io.Writer, path string, ws *types.Workspace) error {
	data, err := EncodeWorkspace(ws)
	if err != nil {
		return err
	}

	if path == "" || path == Stdout {
		if _, err := stdout.Write(data); err != nil {
			return eris.Wrap(err, "failed to write workspace to stdout")
		}
		return nil
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return eris.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// LoadWorkspace reads a generated document back. Every external must have a
// url; a missing branch defaults to master.
func LoadWorkspace(fs afero.Fs, path string) (*types.Workspace, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, eris.Wrapf(err, "could not read workspace %s", path)
	}

	var ws types.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, eris.Wrapf(err, "could not parse workspace %s", path)
	}
	if ws.External == nil {
		ws.External = make(map[string]types.ExternalRepo)
	}

	for extPath, repo := range ws.External {
		if repo.URL == "" {
			return nil, eris.Errorf("external %s in %s has no url", extPath, path)
		}
		if repo.Branch == "" {
			repo.Branch = DefaultBranch
			ws.External[extPath] = repo
		}
	}
	return &ws, nil
}
