/*
Package treemesh implements an adaptive hierarchical Cartesian mesh: a 2D
(quadtree) or 3D (octree) decomposition of a tensor-product domain whose leaf
cells can be independently refined or coarsened.

The mesh is addressed by a Z-order (Morton) index packed together with a
refinement level into a single CellID (zorder.go). A Mesh owns the active-leaf
set and the refine/coarsen primitives (celltree.go), same/larger/smaller
neighbor queries across resolution transitions (neighbor.go), per-cell
geometry derived directly from the per-axis spacing vectors (geometry.go), a
face/edge numbering pass with hanging-node classification (numbering.go), and
the sparse differential operators assembled from that numbering (operators.go).

Mutating the mesh (RefineCell, CoarsenCell, InsertCells) invalidates the
numbering and operator caches; they rebuild lazily on next access.
*/
package treemesh
