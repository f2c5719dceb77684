// Package defaults resolves effective values for fields a spec leaves
// unset. Resolution happens at read time so stored specs always reflect
// exactly what the user submitted.
package defaults
