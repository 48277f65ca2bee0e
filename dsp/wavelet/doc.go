// Package wavelet implements biorthogonal spline wavelets and a multilevel
// periodized discrete wavelet transform.
//
// Filters are built analytically with the Cohen-Daubechies-Feauveau spline
// construction, so every family reconstructs perfectly by construction.
// Family names follow the usual convention: "biorN.M" decomposes with the
// dual filter of order M and reconstructs with the B-spline of order N;
// "rbioN.M" swaps the two.
//
// Decompose and Reconstruct work on arbitrary lengths. Levels of odd length
// are extended by repeating the last sample and trimmed again on
// reconstruction.
package wavelet
