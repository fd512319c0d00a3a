package blockhuffman

// Symbol represents one byte value of the source alphabet.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256
