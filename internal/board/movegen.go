package board

// pseudoLegalMoves enumerates moves without checking whether the mover's own king ends up in
// check; filterLegal in position.go removes those afterward by the simple "make, check, unmake"
// approach. When capturesOnly is set, only captures, en passant and promotions are generated
// (quiescence search's domain, per spec.md §4.5 — promotions are included even when they do not
// capture, since they are forcing moves too).
func (p *Position) pseudoLegalMoves(capturesOnly bool) []Move {
	var moves []Move
	c := p.turn
	own := p.occupiedBy(c)
	opp := p.occupiedBy(c.Opponent())
	occ := own | opp

	moves = p.genPawnMoves(moves, c, occ, opp, capturesOnly)
	moves = p.genOfficerMoves(moves, c, Knight, own, opp, func(sq Square, occ Bitboard) Bitboard { return KnightAttacks(sq) }, occ, capturesOnly)
	moves = p.genOfficerMoves(moves, c, Bishop, own, opp, BishopAttacks, occ, capturesOnly)
	moves = p.genOfficerMoves(moves, c, Rook, own, opp, RookAttacks, occ, capturesOnly)
	moves = p.genOfficerMoves(moves, c, Queen, own, opp, QueenAttacks, occ, capturesOnly)
	moves = p.genOfficerMoves(moves, c, King, own, opp, func(sq Square, occ Bitboard) Bitboard { return KingAttacks(sq) }, occ, capturesOnly)

	if !capturesOnly {
		moves = p.genCastles(moves, c, occ)
	}
	return moves
}

func (p *Position) genOfficerMoves(moves []Move, c Color, piece Piece, own, opp Bitboard, attacks func(Square, Bitboard) Bitboard, occ Bitboard, capturesOnly bool) []Move {
	for _, from := range p.pieces[c][piece].ToSquares() {
		targets := attacks(from, occ) &^ own
		for _, to := range targets.ToSquares() {
			if opp.IsSet(to) {
				_, capture, _ := p.RoleAt(to)
				moves = append(moves, Move{From: from, To: to, Piece: piece, Capture: capture})
			} else if !capturesOnly {
				moves = append(moves, Move{From: from, To: to, Piece: piece})
			}
		}
	}
	return moves
}

var promotionPieces = [4]Piece{Queen, Rook, Bishop, Knight}

func (p *Position) genPawnMoves(moves []Move, c Color, occ, opp Bitboard, capturesOnly bool) []Move {
	dir := 1
	startRank, promoRank := 1, 7
	if c == Black {
		dir = -1
		startRank, promoRank = 6, 0
	}
	ep, hasEP := p.EnPassant()

	for _, from := range p.pieces[c][Pawn].ToSquares() {
		file, rank := from.File(), from.Rank()

		// Captures, including en passant.
		for _, to := range PawnCaptureTargets(c, from).ToSquares() {
			if opp.IsSet(to) {
				_, capture, _ := p.RoleAt(to)
				moves = appendPawnMove(moves, from, to, capture, false, to.Rank() == promoRank)
			} else if hasEP && to == ep {
				moves = append(moves, Move{From: from, To: to, Piece: Pawn, EnPassant: true})
			}
		}

		if capturesOnly {
			// Still include forward promotions below; skip plain pushes.
		} else {
			single := SquareOf(file, rank+dir)
			if !occ.IsSet(single) {
				moves = appendPawnMove(moves, from, single, NoPiece, false, single.Rank() == promoRank)

				if rank == startRank {
					double := SquareOf(file, rank+2*dir)
					if !occ.IsSet(double) {
						moves = append(moves, Move{From: from, To: double, Piece: Pawn})
					}
				}
			}
		}

		if capturesOnly {
			// Forward promotion pushes are forcing moves too, per spec.md §4.5.
			single := SquareOf(file, rank+dir)
			if single.Rank() == promoRank && !occ.IsSet(single) {
				moves = appendPawnMove(moves, from, single, NoPiece, false, true)
			}
		}
	}
	return moves
}

func appendPawnMove(moves []Move, from, to Square, capture Piece, ep bool, promotes bool) []Move {
	if promotes {
		for _, promo := range promotionPieces {
			moves = append(moves, Move{From: from, To: to, Piece: Pawn, Capture: capture, Promotion: promo})
		}
		return moves
	}
	return append(moves, Move{From: from, To: to, Piece: Pawn, Capture: capture, EnPassant: ep})
}

func (p *Position) genCastles(moves []Move, c Color, occ Bitboard) []Move {
	rank := 0
	if c == Black {
		rank = 7
	}
	kingSq := SquareOf(4, rank)
	if p.pieces[c][King].LastPopSquare() != kingSq {
		return moves // king not on its home square; castling impossible
	}
	if p.IsAttacked(kingSq, c.Opponent()) {
		return moves
	}

	ks, qs := Rights(c)
	opp := c.Opponent()

	if p.castling.Has(ks) {
		f, g := SquareOf(5, rank), SquareOf(6, rank)
		if !occ.IsSet(f) && !occ.IsSet(g) && !p.IsAttacked(f, opp) && !p.IsAttacked(g, opp) {
			moves = append(moves, Move{From: kingSq, To: g, Piece: King, Castle: KingsideCastle})
		}
	}
	if p.castling.Has(qs) {
		b, cc, d := SquareOf(1, rank), SquareOf(2, rank), SquareOf(3, rank)
		if !occ.IsSet(b) && !occ.IsSet(cc) && !occ.IsSet(d) && !p.IsAttacked(cc, opp) && !p.IsAttacked(d, opp) {
			moves = append(moves, Move{From: kingSq, To: cc, Piece: King, Castle: QueensideCastle})
		}
	}
	return moves
}

// LastPopSquare returns the lowest-set square, or NumSquares if empty. Convenience accessor
// mirroring the teacher's single-king assumption.
func (b Bitboard) LastPopSquare() Square {
	if b == EmptyBitboard {
		return InvalidSquare
	}
	sq, _ := b.PopLSB()
	return sq
}
