/*
Package document models hypermedia API responses as an immutable tree of
values.

A Document carries both the data a client may access and the actions (Links)
the client may perform on that data. Because every container is immutable,
each logical update produces a new root value that shares all untouched
substructure with the original; callers holding references to the old tree
are never affected by an action.

The value union is closed: nil, bool, int64, float64, string, Array, Object,
*Document, *Link and *Error. Constructors recursively coerce plain Go maps
and slices into Object and Array; anything outside the union fails
construction.

Actions are performed with Document.Action, which resolves a path to a Link,
validates the supplied parameters, invokes the link's handler, and folds the
result back into the tree according to the link's transition.
*/
package document
