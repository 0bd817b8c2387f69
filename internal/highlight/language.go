package highlight

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

// Language binds a tree-sitter grammar to the extensions it covers and
// the capture query used to style it.
type Language struct {
	Name       string
	Lang       *sitter.Language
	Extensions []string
	Query      string
}

var registry []*Language

func register(l *Language) {
	registry = append(registry, l)
}

func init() {
	register(&Language{
		Name:       "go",
		Lang:       gosrc.GetLanguage(),
		Extensions: []string{".go"},
		Query:      goQuery,
	})
	register(&Language{
		Name:       "python",
		Lang:       pythonsrc.GetLanguage(),
		Extensions: []string{".py", ".pyw"},
		Query:      pythonQuery,
	})
	register(&Language{
		Name:       "javascript",
		Lang:       jssrc.GetLanguage(),
		Extensions: []string{".js", ".mjs", ".cjs", ".json"},
		Query:      javascriptQuery,
	})
	register(&Language{
		Name:       "rust",
		Lang:       rustsrc.GetLanguage(),
		Extensions: []string{".rs"},
		Query:      rustQuery,
	})
}

// LanguageForFile picks the language for a file path by extension, or
// nil when the file is not a recognized source file.
func LanguageForFile(path string) *Language {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, l := range registry {
		for _, e := range l.Extensions {
			if e == ext {
				return l
			}
		}
	}
	return nil
}

const goQuery = `
(comment) @comment
(interpreted_string_literal) @string
(raw_string_literal) @string
(rune_literal) @string
(int_literal) @number
(float_literal) @number
(imaginary_literal) @number
[(true) (false) (nil) (iota)] @constant
(type_identifier) @type
(field_identifier) @property
(package_identifier) @namespace
(function_declaration name: (identifier) @function)
(method_declaration name: (field_identifier) @function)
(call_expression function: (identifier) @function)
(call_expression function: (selector_expression field: (field_identifier) @function))
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface" "map"
  "package" "range" "return" "select" "struct" "switch" "type" "var"
] @keyword
`

const pythonQuery = `
(comment) @comment
(string) @string
(integer) @number
(float) @number
[(true) (false) (none)] @constant
(function_definition name: (identifier) @function)
(class_definition name: (identifier) @type)
(call function: (identifier) @function)
[
  "and" "as" "assert" "async" "await" "break" "class" "continue" "def"
  "del" "elif" "else" "except" "finally" "for" "from" "global" "if"
  "import" "in" "is" "lambda" "not" "or" "pass" "raise" "return" "try"
  "while" "with" "yield"
] @keyword
`

const javascriptQuery = `
(comment) @comment
(string) @string
(template_string) @string
(number) @number
[(true) (false) (null) (undefined)] @constant
(function_declaration name: (identifier) @function)
(method_definition name: (property_identifier) @function)
(call_expression function: (identifier) @function)
[
  "async" "await" "break" "case" "catch" "class" "const" "continue"
  "default" "delete" "do" "else" "export" "extends" "finally" "for"
  "function" "if" "import" "in" "instanceof" "let" "new" "of" "return"
  "static" "switch" "throw" "try" "typeof" "var" "while" "yield"
] @keyword
`

const rustQuery = `
(line_comment) @comment
(block_comment) @comment
(string_literal) @string
(char_literal) @string
(integer_literal) @number
(float_literal) @number
(boolean_literal) @constant
(type_identifier) @type
(field_identifier) @property
(function_item name: (identifier) @function)
(call_expression function: (identifier) @function)
[
  "as" "break" "const" "continue" "else" "enum" "fn" "for" "if" "impl"
  "in" "let" "loop" "match" "mod" "move" "mut" "pub" "ref" "return"
  "static" "struct" "trait" "type" "unsafe" "use" "where" "while"
] @keyword
`
