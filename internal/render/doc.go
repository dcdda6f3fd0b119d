// Package render substitutes project variables into template text.
//
// Templates use text/template syntax where every project variable is also a
// function, so both the bare form and the dotted form resolve:
//
//	# {{ project_name }}
//	package {{ .project_name_snake }}
//	const Name = {{ project_name | quote }}
//
// A placeholder that names no known variable or helper is an error. Nothing is
// ever left unsubstituted in the output.
package render
