// Package sqlgraph translates declarative graph queries into relational
// SQL, executes them level by level, and reassembles the rows into the
// nested tree shape the caller requested.
//
// A graph query is an ordered list of entries. Each entry is either a
// plain property or a join into a sub-query:
//
//	q := sqlgraph.Query{
//	    sqlgraph.P("db/id"),
//	    sqlgraph.P("account/name"),
//	    sqlgraph.J("account/invoices", sqlgraph.Sub(
//	        sqlgraph.P("db/id"),
//	        sqlgraph.J("invoice/items", sqlgraph.Sub(
//	            sqlgraph.P("db/id"),
//	            sqlgraph.P("item/name"),
//	        )),
//	    )),
//	}
//
// Joins resolve through the schema's join descriptors: direct joins in
// either direction (the FK on the source or on the target table) and
// many-to-many joins through a link table. Recursive joins take the
// recursion sentinel or a remaining-depth counter as their sub-query:
//
//	sqlgraph.J("account/spouse", sqlgraph.Recur())     // until the cycle closes
//	sqlgraph.J("todo-list-item/subitems", sqlgraph.Levels(1))
//
// RunQuery walks the tree, issuing one SELECT per level with the parent
// ids as the IN-set, and groups child rows back under their parents:
//
//	rows, err := sqlgraph.RunQuery(ctx, drv, s, "account/id", q,
//	    []int64{1}, nil)
//
// The engine is synchronous and stateless across calls; the database
// handle is borrowed from the caller and no transaction is opened.
package sqlgraph
