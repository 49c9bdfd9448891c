// Package normalisers provides implementations of the Normaliser interface
// for the accepted upload formats. Each normaliser knows how to extract
// plain text from files with specific extensions.
//
// Normalisers are registered with a Registry at startup; NewDefaultRegistry
// returns one holding the plaintext, docx and pdf normalisers.
package normalisers
