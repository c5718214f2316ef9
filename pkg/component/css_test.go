package component

import "testing"

func TestExtractBundledCSS(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain css", "p { color: red }", "p { color: red }"},
		{"double quoted", `const __vite__css = "p { color: red }\n"`, "p { color: red }\n"},
		{"single quoted", `const __vite__css = 'a{}\tb{}'`, "a{}\tb{}"},
		{"escaped quote", `const __vite__css = "a[title=\"x\"]{}"`, `a[title="x"]{}`},
		{"module prelude", "import x from 'y'\nconst __vite__css =\n  \"body{}\"\nexport default __vite__css", "body{}"},
		{"unterminated", `const __vite__css = "body{`, "body{"},
		{"not a string", "const __vite__css = css`body{}`", "const __vite__css = css`body{}`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBundledCSS(tt.raw); got != tt.want {
				t.Errorf("ExtractBundledCSS(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
