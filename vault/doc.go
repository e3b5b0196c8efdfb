// Copyright (c) 2026 NotThird.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vault derives the final numeric code from branch completion.

# Pipeline

Three pure steps:

 1. BuildDigits: concatenate each complete branch's 2-digit reward in
    canonical branch order (F, M, D, B), skipping incomplete branches.
 2. ApplyPermutation: reorder the 8-digit string by an 8-character key of
    the digits '1'-'8', each a 1-based index into the input.
 3. Truncate: the first 6 characters of the permuted string are the code.

Worked example (the configuration shipped with the game):

	digits "41820953" + key "26153478" -> "19408253" -> code "194082"

# Failure Mode

If fewer than four branches are complete, or the key is not a valid
permutation, Compute returns the raw digits with an empty Permuted/Code:
"not yet computable", never a malformed code.

# Opening the Vault

CodeMatches accepts either the computed code or a separately configured
operator override code, so a mis-set permutation key can't strand the game.
*/
package vault
