package parser

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/elauffenburger/protoparse/internal/corpora"
	"github.com/elauffenburger/protoparse/reporter"
)

// corpusCase is one file under testdata: a source document and the
// dialect to parse it with. The expected tree dump and error message
// live in sibling golden files.
type corpusCase struct {
	Dialect string `yaml:"dialect"`
	Source  string `yaml:"source"`
}

func TestCorpus(t *testing.T) {
	t.Parallel()
	corpora.Corpus{
		Root:      "testdata",
		Refresh:   "PROTOPARSE_REFRESH",
		Extension: "yaml",
		Outputs:   []string{"ast", "err"},
		Test: func(t *testing.T, path string, data []byte) []string {
			var tc corpusCase
			if err := yaml.Unmarshal(data, &tc); err != nil {
				t.Fatal(err)
			}
			var dialect Dialect
			switch tc.Dialect {
			case "legacy":
				dialect = DialectLegacy
			case "proto":
				dialect = DialectProto
			default:
				t.Fatalf("unknown dialect %q", tc.Dialect)
			}

			f, err := ParseString("test.proto", tc.Source, dialect, reporter.NewHandler(nil))
			if err != nil {
				return []string{"", err.Error() + "\n"}
			}
			return []string{f.DebugString(), ""}
		},
	}.Run(t)
}
