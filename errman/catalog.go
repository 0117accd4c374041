package errman

// Built-in error names. Each constant equals its own spelling, matching the
// host's symbolic error vocabulary.
const (
	VersionError    = "VersionError"
	FunctionError   = "FunctionError"
	MemoryError     = "MemoryError"
	NumericalError  = "NumericalError"
	DimensionsError = "DimensionsError"
	RankError       = "RankError"
	TypeError       = "TypeError"
	NoError         = "NoError"

	MArgumentLibDataError      = "MArgumentLibDataError"
	MArgumentIndexError        = "MArgumentIndexError"
	MArgumentNumericArrayError = "MArgumentNumericArrayError"
	MArgumentTensorError       = "MArgumentTensorError"
	MArgumentImageError        = "MArgumentImageError"

	ThrowIdError    = "ErrorManagerThrowIdError"
	ThrowNameError  = "ErrorManagerThrowNameError"
	CreateNameError = "ErrorManagerCreateNameError"

	NumericArrayInitError       = "NumericArrayInitError"
	NumericArrayNewError        = "NumericArrayNewError"
	NumericArrayCloneError      = "NumericArrayCloneError"
	NumericArrayTypeError       = "NumericArrayTypeError"
	NumericArraySizeError       = "NumericArraySizeError"
	NumericArrayIndexError      = "NumericArrayIndexError"
	NumericArrayConversionError = "NumericArrayConversionError"

	TensorInitError  = "TensorInitError"
	TensorNewError   = "TensorNewError"
	TensorCloneError = "TensorCloneError"
	TensorTypeError  = "TensorTypeError"
	TensorSizeError  = "TensorSizeError"
	TensorIndexError = "TensorIndexError"

	ImageInitError  = "ImageInitError"
	ImageNewError   = "ImageNewError"
	ImageCloneError = "ImageCloneError"
	ImageTypeError  = "ImageTypeError"
	ImageSizeError  = "ImageSizeError"
	ImageIndexError = "ImageIndexError"

	MLTestHeadError           = "MLTestHeadError"
	MLPutSymbolError          = "MLPutSymbolError"
	MLPutFunctionError        = "MLPutFunctionError"
	MLTestSymbolError         = "MLTestSymbolError"
	MLWrongSymbolForBool      = "MLWrongSymbolForBool"
	MLGetListError            = "MLGetListError"
	MLGetScalarError          = "MLGetScalarError"
	MLGetStringError          = "MLGetStringError"
	MLGetArrayError           = "MLGetArrayError"
	MLPutListError            = "MLPutListError"
	MLPutScalarError          = "MLPutScalarError"
	MLPutStringError          = "MLPutStringError"
	MLPutArrayError           = "MLPutArrayError"
	MLGetSymbolError          = "MLGetSymbolError"
	MLGetFunctionError        = "MLGetFunctionError"
	MLPacketHandleError       = "MLPacketHandleError"
	MLFlowControlError        = "MLFlowControlError"
	MLTransferToLoopbackError = "MLTransferToLoopbackError"
	MLCreateLoopbackError     = "MLCreateLoopbackError"
	MLLoopbackStackSizeError  = "MLLoopbackStackSizeError"

	DLNullRawNode       = "DLNullRawNode"
	DLInvalidNodeType   = "DLInvalidNodeType"
	DLGetNodeDataError  = "DLGetNodeDataError"
	DLNullRawDataStore  = "DLNullRawDataStore"
	DLSharedDataStore   = "DLSharedDataStore"
	DLPushBackTypeError = "DLPushBackTypeError"

	ArgumentCreateNull       = "ArgumentCreateNull"
	ArgumentAddNodeMArgument = "ArgumentAddNodeMArgument"

	Aborted = "Aborted"
)

// builtinCatalog lists every built-in error in id-assignment order: the
// first entry gets id 7, each following entry one less.
var builtinCatalog = []ErrorData{
	// Host error codes:
	{VersionError, "An error was caused by an incompatible function call. The library was compiled with a previous host version."},
	{FunctionError, "An error occurred in the library function."},
	{MemoryError, "An error was caused by failed memory allocation or insufficient memory."},
	{NumericalError, "A numerical error was encountered."},
	{DimensionsError, "An error caused by inconsistent dimensions or by exceeding array bounds."},
	{RankError, "An error was caused by a tensor with an inconsistent rank."},
	{TypeError, "An error caused by inconsistent types was encountered."},
	{NoError, "No errors occurred."},

	// Argument manager errors:
	{MArgumentLibDataError, "LibraryData is not set."},
	{MArgumentIndexError, "An error was caused by an incorrect argument index."},
	{MArgumentNumericArrayError, "An error was caused by a NumericArray argument."},
	{MArgumentTensorError, "An error was caused by a Tensor argument."},
	{MArgumentImageError, "An error was caused by an Image argument."},

	// Error manager errors:
	{ThrowIdError, "An exception was thrown with a non-existent id."},
	{ThrowNameError, "An exception was thrown with a non-existent name."},
	{CreateNameError, "An exception was registered with a name that already exists."},

	// NumericArray errors:
	{NumericArrayInitError, "Failed to construct NumericArray."},
	{NumericArrayNewError, "Failed to create a new NumericArray."},
	{NumericArrayCloneError, "Failed to clone NumericArray."},
	{NumericArrayTypeError, "An error was caused by a NumericArray type mismatch."},
	{NumericArraySizeError, "An error was caused by an incorrect NumericArray size."},
	{NumericArrayIndexError, "An error was caused by attempting to access a nonexistent NumericArray element."},
	{NumericArrayConversionError, "Failed to convert NumericArray from different type."},

	// Tensor errors:
	{TensorInitError, "Failed to construct Tensor."},
	{TensorNewError, "Failed to create a new Tensor."},
	{TensorCloneError, "Failed to clone Tensor."},
	{TensorTypeError, "An error was caused by a Tensor type mismatch."},
	{TensorSizeError, "An error was caused by an incorrect Tensor size."},
	{TensorIndexError, "An error was caused by attempting to access a nonexistent Tensor element."},

	// Image errors:
	{ImageInitError, "Failed to construct Image."},
	{ImageNewError, "Failed to create a new Image."},
	{ImageCloneError, "Failed to clone Image."},
	{ImageTypeError, "An error was caused by an Image type mismatch."},
	{ImageSizeError, "An error was caused by an incorrect Image size."},
	{ImageIndexError, "An error was caused by attempting to access a nonexistent Image element."},

	// Link protocol errors:
	{MLTestHeadError, "Testing the expression head failed (wrong head or number of arguments)."},
	{MLPutSymbolError, "Could not send a symbol via the link."},
	{MLPutFunctionError, "Could not send a function head via the link."},
	{MLTestSymbolError, "Different symbol on the link than expected."},
	{MLWrongSymbolForBool, `Tried to read something else than "True" or "False" as boolean.`},
	{MLGetListError, "Could not get a list from the link."},
	{MLGetScalarError, "Could not get a scalar from the link."},
	{MLGetStringError, "Could not get a string from the link."},
	{MLGetArrayError, "Could not get an array from the link."},
	{MLPutListError, "Could not send a list via the link."},
	{MLPutScalarError, "Could not send a scalar via the link."},
	{MLPutStringError, "Could not send a string via the link."},
	{MLPutArrayError, "Could not send an array via the link."},
	{MLGetSymbolError, "Could not get a symbol from the link."},
	{MLGetFunctionError, "Could not get a function head from the link."},
	{MLPacketHandleError, "One of the packet handling functions failed."},
	{MLFlowControlError, "One of the flow control functions failed."},
	{MLTransferToLoopbackError, "Something went wrong when transferring expressions from a loopback link."},
	{MLCreateLoopbackError, "Could not create a new loopback link."},
	{MLLoopbackStackSizeError, "Loopback stack size too small to perform the desired action."},

	// Record list errors:
	{DLNullRawNode, "DataStore node passed to a node wrapper was null."},
	{DLInvalidNodeType, "DataStore node carries data of an invalid type."},
	{DLGetNodeDataError, "Reading data from a DataStore node failed."},
	{DLNullRawDataStore, "DataStore passed to a wrapper was null."},
	{DLSharedDataStore, "DataStore cannot be wrapped with Shared passing."},
	{DLPushBackTypeError, "Element to be added to the DataStore has an incorrect type."},

	// Argument wrapper errors:
	{ArgumentCreateNull, "Trying to create an argument wrapper from a null handle."},
	{ArgumentAddNodeMArgument, "Trying to add a DataStore node of an undetermined type."},

	// Cancellation:
	{Aborted, "Computation aborted by the user."},
}
