package mnist

// File names an IDX archive and the SHA-256 of its gzip bytes.
// An empty digest disables verification.
type File struct {
	Name   string
	SHA256 string
}

// Files is the image/label pair making up one split.
type Files struct {
	Images File
	Labels File
}

// TestFiles is the 10k-sample MNIST test split.
var TestFiles = Files{
	Images: File{
		Name:   "t10k-images-idx3-ubyte.gz",
		SHA256: "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6",
	},
	Labels: File{
		Name:   "t10k-labels-idx1-ubyte.gz",
		SHA256: "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6",
	},
}
