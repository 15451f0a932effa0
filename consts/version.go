package consts

// Version is overridden at build time with -ldflags "-X github.com/pie-314/trx/consts.Version=..."
var Version = "dev"
