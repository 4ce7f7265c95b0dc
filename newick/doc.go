/*
Package newick provides facilities for reading and writing binary
phylogenetic trees in the Newick format. The format used is roughly
equivalent to the conventions established here:
http://evolution.genetics.washington.edu/phylip/newick_doc.html. Although,
comments and quoted labels are not (yet) implemented.

An informal description of the Newick format can be found here:
http://evolution.genetics.washington.edu/phylip/newicktree.html.

Reading happens in two steps. Lex turns text into a slice of tokens and
Build turns those tokens into a Tree. Parse does both. Only binary trees are
accepted: every node has either zero or two children.

A Tree also carries depths, the cumulative branch length from the root.
AssignDepths and DepthsToLengths convert between the two, which is how
branch lengths are recovered after a tree has been restructured.
*/
package newick
