// Package migrations registers the schema migrations. Import it for its
// side effects:
//
//	import _ "github.com/aldeanavidad/tienda/database/migrations"
package migrations
