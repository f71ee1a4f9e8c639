package mcpserver

// DataContract describes the rules every folder and note write must follow.
// It is served as a resource so LLM clients can read it before writing.
const DataContract = `# Noteful Data Contract

## Folders

- ` + "`name`" + ` is required.
- It may only contain letters, digits, spaces and the characters ` + "`- _ ! ? .`" + `
- It must contain at least one non-space character.

## Notes

- ` + "`title`" + ` follows the folder name rules.
- ` + "`content`" + ` is any text with at least one non-space character.
- ` + "`folder_id`" + ` must be the numeric id of an existing folder at the time
  of the write. Numeric strings such as "1" are rejected.
- Updates accept any subset of title, content and folder_id, but at least one.
  If any supplied field is invalid nothing is changed.

## Deleting folders

Deleting a folder does not delete or move its notes. Their folder_id keeps
pointing at the removed folder until they are updated.
`
