// Package blockhuffman implements a block-parallel Huffman coder for byte
// streams.  A Huffman tree is derived from the byte frequencies of the
// input, the input is split into blocks of nearly equal size, and every
// block is encoded (or decoded) by its own goroutine.  Only the frequency
// table is stored alongside the encoded blocks; the decoder rebuilds the
// identical tree from it.
//
// Encoded frame layout (all integers big-endian):
//
//     Statistics         256 × uint64, one count per byte value
//     BlockCount         int32, N >= 1
//     BlockLength[0..N)  N × int32, encoded length of each block in bytes
//     BlockBytes[0..N)   the encoded blocks, each padded with 0 bits to a
//                        byte boundary
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package blockhuffman
