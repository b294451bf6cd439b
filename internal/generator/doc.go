// Package generator renders cloud-init user-data from a template.
//
// Templates are plain text with three placeholder tokens:
//
//	{{USERNAME}}   the login user
//	{{REPO_URL}}   the dotfiles repository to clone
//	{{SSH_KEYS}}   expands to a YAML list, one item per key
//
// {{SSH_KEYS}} must sit alone on its line; the whitespace before it becomes
// the indentation of every list item:
//
//	    ssh_authorized_keys:
//	      {{SSH_KEYS}}
//
// renders as
//
//	    ssh_authorized_keys:
//	      - ssh-ed25519 AAAA... alice@laptop
//	      - ssh-ed25519 AAAA... alice@desktop
//
// Render is pure: it takes the template text and a Context and returns
// bytes. Identical inputs always give identical output. The result is
// rejected if any {{NAME}} token remains or if it does not parse as YAML.
package generator
