// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major Matrix type that every
// decomposition in lvdecomp consumes, together with the validators and the
// small kernel set the factorizations and their verification steps need.
//
// Surface:
//   - Matrix interface (Rows/Cols/At/Set/Clone) and its concrete *Dense.
//   - Constructors: NewDense, NewFromRows (validated literal), NewIdentity,
//     NewDiagonal, MustFromRows for fixtures.
//   - Validators: ValidateRectangular, RequireSquare, ValidateSameShape,
//     ValidateBinarySameShape, ValidateMulCompatible.
//   - Kernels: Add, Sub, Mul, MulChain, Transpose, Scale, Diagonal,
//     MaxAbsDiff, AllClose, Inverse.
//   - gonum bridge: ToGonum, FromGonum, Guard.
//
// Contracts:
//   - Shape violations surface as *ShapeError, which matches ErrBadShape and
//     its specific kind through errors.Is.
//   - Kernels never mutate operands and never panic on user input; every
//     result is a freshly allocated *Dense.
//   - Storage is finite-only: Set and every constructor reject NaN/±Inf.
//
// Determinism:
//   - Loop orders are fixed (row-major, i→k→j for Mul), so identical inputs
//     produce bit-identical outputs.
package matrix
