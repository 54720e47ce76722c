package formatter

import (
	"path/filepath"
	"strings"
)

// extensionLanguageTags maps file extensions to the language tag placed on
// the opening fence of a rendered block. Unknown extensions render a bare
// fence.
var extensionLanguageTags = map[string]string{
	".py":     "python",
	".js":     "javascript",
	".ts":     "typescript",
	".jsx":    "jsx",
	".tsx":    "tsx",
	".html":   "html",
	".css":    "css",
	".scss":   "scss",
	".json":   "json",
	".md":     "markdown",
	".yml":    "yaml",
	".yaml":   "yaml",
	".toml":   "toml",
	".ini":    "ini",
	".cfg":    "ini",
	".txt":    "text",
	".sh":     "bash",
	".bash":   "bash",
	".zsh":    "bash",
	".fish":   "fish",
	".c":      "c",
	".h":      "c",
	".cpp":    "cpp",
	".hpp":    "cpp",
	".java":   "java",
	".go":     "go",
	".rs":     "rust",
	".rb":     "ruby",
	".php":    "php",
	".swift":  "swift",
	".kt":     "kotlin",
	".kts":    "kotlin",
	".scala":  "scala",
	".sql":    "sql",
	".r":      "r",
	".dart":   "dart",
	".lua":    "lua",
	".ex":     "elixir",
	".exs":    "elixir",
	".erl":    "erlang",
	".hrl":    "erlang",
	".clj":    "clojure",
	".cs":     "csharp",
	".fs":     "fsharp",
	".pl":     "perl",
	".pm":     "perl",
	".hs":     "haskell",
	".lhs":    "haskell",
	".proto":  "protobuf",
}

// LanguageTagForPath returns the fence language tag for a file path based on
// its extension. Unknown extensions return an empty tag.
func LanguageTagForPath(path string) string {
	extension := strings.ToLower(filepath.Ext(path))
	return extensionLanguageTags[extension]
}
