package blocks

// OpType identifies the kind of question a block generates.
type OpType string

// Basic operation types.
const (
	Addition              OpType = "addition"
	Subtraction           OpType = "subtraction"
	AddSub                OpType = "add_sub"
	Multiplication        OpType = "multiplication"
	Division              OpType = "division"
	SquareRoot            OpType = "square_root"
	CubeRoot              OpType = "cube_root"
	DecimalMultiplication OpType = "decimal_multiplication"
	LCM                   OpType = "lcm"
	GCD                   OpType = "gcd"
	IntegerAddSub         OpType = "integer_add_sub"
	DecimalDivision       OpType = "decimal_division"
	DecimalAddSub         OpType = "decimal_add_sub"
	DirectAddSub          OpType = "direct_add_sub"
	SmallFriendsAddSub    OpType = "small_friends_add_sub"
	BigFriendsAddSub      OpType = "big_friends_add_sub"
	Percentage            OpType = "percentage"
)

// Vedic maths level 1 operation types.
const (
	VedicMultiplyBy11          OpType = "vedic_multiply_by_11"
	VedicMultiplyBy101         OpType = "vedic_multiply_by_101"
	VedicSubtractionComplement OpType = "vedic_subtraction_complement"
	VedicSubtractionNormal     OpType = "vedic_subtraction_normal"
	VedicMultiplyBy12To19      OpType = "vedic_multiply_by_12_19"
	VedicSpecialProducts100    OpType = "vedic_special_products_base_100"
	VedicSpecialProducts50     OpType = "vedic_special_products_base_50"
	VedicMultiplyBy21To91      OpType = "vedic_multiply_by_21_91"
	VedicAddition              OpType = "vedic_addition"
	VedicMultiplyBy2           OpType = "vedic_multiply_by_2"
	VedicMultiplyBy4           OpType = "vedic_multiply_by_4"
	VedicDivideBy2             OpType = "vedic_divide_by_2"
	VedicDivideBy4             OpType = "vedic_divide_by_4"
	VedicDivideSingleDigit     OpType = "vedic_divide_single_digit"
	VedicMultiplyBy6           OpType = "vedic_multiply_by_6"
	VedicDivideBy11            OpType = "vedic_divide_by_11"
	VedicSquaresBase10         OpType = "vedic_squares_base_10"
	VedicSquaresBase100        OpType = "vedic_squares_base_100"
	VedicSquaresBase1000       OpType = "vedic_squares_base_1000"
	VedicTables                OpType = "vedic_tables"
)

// AllTypes returns every registered operation type in menu order.
func AllTypes() []OpType {
	return []OpType{
		Addition, Subtraction, AddSub, Multiplication, Division,
		SquareRoot, CubeRoot, DecimalMultiplication, LCM, GCD,
		IntegerAddSub, DecimalDivision, DecimalAddSub, DirectAddSub,
		SmallFriendsAddSub, BigFriendsAddSub, Percentage,
		VedicMultiplyBy11, VedicMultiplyBy101, VedicSubtractionComplement,
		VedicSubtractionNormal, VedicMultiplyBy12To19, VedicSpecialProducts100,
		VedicSpecialProducts50, VedicMultiplyBy21To91, VedicAddition,
		VedicMultiplyBy2, VedicMultiplyBy4, VedicDivideBy2, VedicDivideBy4,
		VedicDivideSingleDigit, VedicMultiplyBy6, VedicDivideBy11,
		VedicSquaresBase10, VedicSquaresBase100, VedicSquaresBase1000,
		VedicTables,
	}
}

// Valid reports whether t is a registered operation type.
func (t OpType) Valid() bool {
	_, ok := registry[t]
	return ok
}

// IsAddSubFamily reports whether t generates chained addition/subtraction
// columns configured by digits and rows.
func (t OpType) IsAddSubFamily() bool {
	switch t {
	case Addition, Subtraction, AddSub, IntegerAddSub, DecimalAddSub,
		DirectAddSub, SmallFriendsAddSub, BigFriendsAddSub:
		return true
	}
	return false
}

// IsVedic reports whether t is one of the Vedic maths variants.
func (t OpType) IsVedic() bool {
	return len(t) > 6 && t[:6] == "vedic_"
}

// UsesCount reports whether the block size is controlled by count. Tables
// paginate by rows instead.
func (t OpType) UsesCount() bool {
	return t != VedicTables
}

// DisplayName returns the label shown in type pickers.
func (t OpType) DisplayName() string {
	if s, ok := registry[t]; ok {
		return s.Name
	}
	return string(t)
}
