package hostsetup

import (
	"github.com/gmatenda/variant-bench/utils"
)

// InstallNvidiaDocker runs the one-off host setup for GPU case studies: the
// NVIDIA apt repository, the container toolkit, a runtime restart and a
// smoke test. Strictly linear, no retries; the commands go through the
// executor so --dry_run previews them.
func InstallNvidiaDocker(exec utils.Executor) error {
	cmds := []string{
		`sudo apt-get -qq -y update`,
		`sudo apt-get -qq -y install curl docker.io`,
		`distribution=$(. /etc/os-release; echo $ID$VERSION_ID) && curl -s -L https://nvidia.github.io/nvidia-docker/gpgkey | sudo apt-key add - && curl -s -L https://nvidia.github.io/nvidia-docker/$distribution/nvidia-docker.list | sudo tee /etc/apt/sources.list.d/nvidia-docker.list`,
		`sudo apt-get -qq -y update`,
		`sudo apt-get -qq -y install nvidia-docker2`,
		`sudo systemctl restart docker`,
		`sudo docker run --gpus 1 nvidia/cuda:11.3.1-base-ubuntu20.04 nvidia-smi`,
	}

	for _, cmdStr := range cmds {
		if err := exec.Run(cmdStr); err != nil {
			return err
		}
	}
	return nil
}
