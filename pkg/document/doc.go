// Package document implements the YAD container framing on top of the value
// codec: a Document holds named Rows, a Row holds uniquely-named Keys, and a
// Key binds a name to one typed value.
//
// On the wire a document is a 5-byte version stamp followed by row chunks.
// Rows and keys are sentinel-delimited:
//
//	Row  [0xF1][0x60|width][name-length][name][key-chunks...][0xF2]
//	Key  [0xF3][0x70|width][name-length][name][value][0xF4]
//
// Names are framed like string values but carry a distinct marker nibble
// (0x60 for rows, 0x70 for keys) so a name chunk can never be mistaken for a
// standalone string value. Rows and keys are unordered sets keyed by name;
// duplicate names resolve to the last occurrence (last writer wins). Array
// element order, by contrast, is significant and preserved by the codec.
package document
