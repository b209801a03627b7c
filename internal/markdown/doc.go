// Package markdown renders editor supplied Markdown, such as legal page
// content, to HTML with goldmark.
package markdown
