package etherscan

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const weiPerEth = 1e18

var wethUsdcContractAddress = common.HexToAddress("0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640")

// getContractAddress resolves a pool identifier to its contract address.
func getContractAddress(pool string) (common.Address, error) {
	switch pool {
	case "WETH-USDC":
		return wethUsdcContractAddress, nil
	default:
		return common.Address{}, errors.Errorf("invalid pool type: %s", pool)
	}
}

// ethFromGas converts gas used and gas price (wei) into a whole-ETH fee.
func ethFromGas(gasUsed, gasPrice float64) float64 {
	return gasUsed * gasPrice / weiPerEth
}
