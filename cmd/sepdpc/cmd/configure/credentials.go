package configure

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/agentstation/sepdpc/internal/cmd/application"
	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/errors"
)

// Write stores conn at path in dotenv format, readable by the owner only.
// It fails if path already exists.
func Write(path string, conn application.Connection) error {
	content, err := godotenv.Marshal(map[string]string{
		constants.EnvPrefix + "_HOST":  conn.Host,
		constants.EnvPrefix + "_USER":  conn.User,
		constants.EnvPrefix + "_TOKEN": conn.Token,
	})
	if err != nil {
		return errors.WrapParse("dotenv", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.SecureFilePermissions)
	if err != nil {
		if os.IsExist(err) {
			return errors.NewAlreadyExistsError("credentials file", path)
		}
		return errors.WrapIO("create", path, err)
	}

	if _, err := f.WriteString(content + "\n"); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}
