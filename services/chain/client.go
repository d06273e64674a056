package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// OnChainBooking mirrors the Booking struct of the HotelBooking contract.
type OnChainBooking struct {
	Id           *big.Int
	HotelId      *big.Int
	RoomId       *big.Int
	Guest        common.Address
	CheckInDate  *big.Int
	CheckOutDate *big.Int
	TotalPrice   *big.Int
	IsPaid       bool
	IsCancelled  bool
}

// OnChainRoom mirrors the Room struct of the HotelBooking contract.
type OnChainRoom struct {
	Id          *big.Int
	HotelId     *big.Int
	RoomType    string
	Price       *big.Int
	Capacity    *big.Int
	IsAvailable bool
}

// ChainClient reads booking state from the HotelBooking contract and checks
// transaction receipts. Funds only ever move through client wallets; the
// server is a verifier.
type ChainClient interface {
	Enabled() bool
	VerifyTransaction(ctx context.Context, txHash string) (bool, error)
	GetBooking(ctx context.Context, bookingID *big.Int) (*OnChainBooking, error)
	GetRoom(ctx context.Context, roomID *big.Int) (*OnChainRoom, error)
}

// Read surface of the HotelBooking contract.
const hotelBookingABI = `[
	{"name":"getBooking","type":"function","stateMutability":"view",
	 "inputs":[{"name":"bookingId","type":"uint256"}],
	 "outputs":[{"components":[
		{"name":"id","type":"uint256"},
		{"name":"hotelId","type":"uint256"},
		{"name":"roomId","type":"uint256"},
		{"name":"guest","type":"address"},
		{"name":"checkInDate","type":"uint256"},
		{"name":"checkOutDate","type":"uint256"},
		{"name":"totalPrice","type":"uint256"},
		{"name":"isPaid","type":"bool"},
		{"name":"isCancelled","type":"bool"}],
	 "name":"","type":"tuple"}]},
	{"name":"getRoom","type":"function","stateMutability":"view",
	 "inputs":[{"name":"roomId","type":"uint256"}],
	 "outputs":[{"components":[
		{"name":"id","type":"uint256"},
		{"name":"hotelId","type":"uint256"},
		{"name":"roomType","type":"string"},
		{"name":"price","type":"uint256"},
		{"name":"capacity","type":"uint256"},
		{"name":"isAvailable","type":"bool"}],
	 "name":"","type":"tuple"}]}
]`

// EthChainClient implements ChainClient over a JSON-RPC provider.
type EthChainClient struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	logger   *zap.Logger
}

// NewEthChainClient dials the provider and binds the contract. Either value
// being empty returns (nil, nil): callers treat a nil client as a disabled
// chain integration rather than an error.
func NewEthChainClient(providerURL, contractAddress string, logger *zap.Logger) (*EthChainClient, error) {
	if providerURL == "" || contractAddress == "" {
		return nil, nil
	}

	client, err := ethclient.Dial(providerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial provider %s: %w", providerURL, err)
	}

	parsed, err := abi.JSON(strings.NewReader(hotelBookingABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	contract := bind.NewBoundContract(common.HexToAddress(contractAddress), parsed, client, client, client)
	return &EthChainClient{client: client, contract: contract, logger: logger}, nil
}

// Enabled reports whether the chain integration is configured.
func (c *EthChainClient) Enabled() bool {
	return c != nil && c.client != nil
}

// VerifyTransaction checks that the given transaction hash has a mined,
// successful receipt.
func (c *EthChainClient) VerifyTransaction(ctx context.Context, txHash string) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	receipt, err := c.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		return false, fmt.Errorf("failed to fetch receipt for %s: %w", txHash, err)
	}
	return receipt.Status == types.ReceiptStatusSuccessful, nil
}

// GetBooking reads a booking from contract storage.
func (c *EthChainClient) GetBooking(ctx context.Context, bookingID *big.Int) (*OnChainBooking, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("chain integration is not configured")
	}
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getBooking", bookingID); err != nil {
		return nil, fmt.Errorf("getBooking(%s) call failed: %w", bookingID, err)
	}
	booking := *abi.ConvertType(out[0], new(OnChainBooking)).(*OnChainBooking)
	return &booking, nil
}

// GetRoom reads a room from contract storage.
func (c *EthChainClient) GetRoom(ctx context.Context, roomID *big.Int) (*OnChainRoom, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("chain integration is not configured")
	}
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getRoom", roomID); err != nil {
		return nil, fmt.Errorf("getRoom(%s) call failed: %w", roomID, err)
	}
	room := *abi.ConvertType(out[0], new(OnChainRoom)).(*OnChainRoom)
	return &room, nil
}
